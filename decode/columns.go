package decode

import (
	"sort"

	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeColumns reads the mandatory Columns Id; section (§4.1): the source
// database columns, each naming the table it belongs to. TableIndex is
// already populated by the time this runs, so a column's owning table
// resolves immediately; an unresolvable table id leaves Table nil, which
// is permitted (§3) rather than treated as a structural failure.
func (d *decoder) decodeColumns() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerColumnsID)
	if err != nil {
		return err
	}

	if _, err := c.ReadU32LE(); err != nil { // column_count
		return wrapStructural(unvfmt.MarkerColumnsID, c, err)
	}
	count2, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerColumnsID, c, err)
	}

	d.u.Columns = make([]*universe.Column, 0, count2)
	for i := uint32(0); i < count2; i++ {
		id, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerColumnsID, c, err)
		}
		tableID, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerColumnsID, c, err)
		}
		name, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerColumnsID, c, err)
		}
		col := &universe.Column{ID: id, Name: name, TableID: tableID, Table: d.u.TableIndex[tableID]}
		d.u.Columns = append(d.u.Columns, col)
	}

	sort.Slice(d.u.Columns, func(i, j int) bool { return d.u.Columns[i].ID < d.u.Columns[j].ID })
	return nil
}
