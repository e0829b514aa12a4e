package universe

import (
	"fmt"
	"strconv"

	"github.com/dpeckham/unvread/internal/unvfmt"
)

// ExpandSQL replaces sentinel-tagged id references in raw with resolved
// names, using the universe's table/object indexes. Bytes outside a
// sentinel+digits run are copied through verbatim (the expansion-purity
// invariant in §8). Unresolvable ids render as UnknownTable_<id> /
// UnknownObject_<id>.
//
// The expansion is computed on demand rather than cached on the entity, so
// it always reflects the current state of TableIndex/ObjectIndex (§9).
func (u *Universe) ExpandSQL(raw string) string {
	if raw == "" {
		return raw
	}
	data := []byte(raw)
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		b := data[i]
		if b == unvfmt.SentinelTableID || b == unvfmt.SentinelObjectID {
			digits, n := scanDigits(data[i+1:])
			if n > 0 {
				id64, _ := strconv.ParseUint(string(digits), 10, 32)
				id := uint32(id64)
				if b == unvfmt.SentinelTableID {
					out = append(out, []byte(u.tableNameForID(id))...)
				} else {
					out = append(out, []byte(u.objectFullNameForID(id))...)
				}
				i += 1 + n
				continue
			}
		}
		out = append(out, b)
		i++
	}
	return string(out)
}

// scanDigits consumes up to 4 leading ASCII digit bytes from data.
func scanDigits(data []byte) (digits []byte, n int) {
	for n < len(data) && n < 4 && data[n] >= '0' && data[n] <= '9' {
		n++
	}
	return data[:n], n
}

func (u *Universe) tableNameForID(id uint32) string {
	if t, ok := u.TableIndex[id]; ok {
		return t.Name
	}
	return fmt.Sprintf("UnknownTable_%d", id)
}

func (u *Universe) objectFullNameForID(id uint32) string {
	if o, ok := u.ObjectIndex[id]; ok {
		return o.FullName()
	}
	return fmt.Sprintf("UnknownObject_%d", id)
}

// SelectSQL expands o.Select's sentinel-tagged ids into resolved names.
func (u *Universe) SelectSQL(o *Object) string {
	return u.ExpandSQL(o.Select)
}

// WhereSQL expands o.Where's sentinel-tagged ids into resolved names.
func (u *Universe) WhereSQL(o *Object) string {
	return u.ExpandSQL(o.Where)
}

// ConditionWhereSQL expands c.Where's sentinel-tagged ids into resolved
// names.
func (u *Universe) ConditionWhereSQL(c *Condition) string {
	return u.ExpandSQL(c.Where)
}

// JoinStatement reconstructs the executable SQL-like text for j (§4.3).
// With exactly two terms, the statement is term0+expression+term1; with
// any other term count, the expression is a template in which each
// template-slot sentinel byte is substituted in order by a fully
// qualified term.
func (u *Universe) JoinStatement(j *Join) string {
	if len(j.Terms) == 2 {
		return u.fullTerm(j.Terms[0]) + j.Expression + u.fullTerm(j.Terms[1])
	}

	terms := make([]string, len(j.Terms))
	for i, t := range j.Terms {
		terms[i] = u.fullTerm(t)
	}

	expr := []byte(j.Expression)
	out := make([]byte, 0, len(expr))
	slot := 0
	for _, b := range expr {
		if b == unvfmt.SentinelTemplateSlot && slot < len(terms) {
			out = append(out, []byte(terms[slot])...)
			slot++
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func (u *Universe) fullTerm(t JoinTerm) string {
	if table, ok := u.TableIndex[t.TableID]; ok {
		return table.Name + "." + t.Column
	}
	return fmt.Sprintf("UnknownTable_%d.%s", t.TableID, t.Column)
}
