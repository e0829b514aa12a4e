// Package analyze implements the cross-reference analyzer (§4.5): a
// read-only pass over an already-decoded, frozen universe that derives
// cross-references, validation diagnostics, a dependency graph, and the
// reporting-oriented "detail" views (enhanced tables, table columns, join
// and context details, context incompatibilities, LOV definitions index).
//
// Nothing here mutates a decoded entity; every output lands in one of the
// analyzer-owned Universe fields, or is appended to Diagnostics after the
// entries package decode recorded.
package analyze

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dpeckham/unvread/config"
	"github.com/dpeckham/unvread/universe"
)

// tableRefPattern matches a bare identifier immediately followed by a dot,
// the shape a table-qualified column reference takes in expanded SQL.
var tableRefPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.`)

var sqlKeywordStopList = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"NOT": true, "IN": true, "BETWEEN": true, "LIKE": true, "IS": true, "NULL": true,
}

// extractTableReferences returns the deduplicated set of candidate table
// names a SQL fragment references, in first-seen order.
func extractTableReferences(sql string) []string {
	if sql == "" {
		return nil
	}
	seen := map[string]bool{}
	var refs []string
	for _, m := range tableRefPattern.FindAllStringSubmatch(sql, -1) {
		name := m[1]
		if sqlKeywordStopList[strings.ToUpper(name)] {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, name)
	}
	return refs
}

// Analyze runs the three §4.5 analyses plus the supplemental detail views
// over an already-decoded universe, with a default concurrency of 4
// (bounded fan-out, as the errgroup-backed helpers in decode/procedure and
// here both use).
func Analyze(u *universe.Universe, opts config.Options) error {
	a := &analyzer{u: u, opts: opts, tablesByName: buildTableNameIndex(u)}

	a.crossReferenceObjects()
	a.crossReferenceJoins()
	a.validateObjects()
	a.buildDependencyGraph()
	a.buildEnhancedTables()
	a.buildTableColumns()
	a.buildJoinDetails()
	a.buildContextDetails()
	a.analyzeContextIncompatibilities()
	a.buildLOVDefinitions()

	return nil
}

type analyzer struct {
	u            *universe.Universe
	opts         config.Options
	tablesByName map[string]*universe.Table
}

func buildTableNameIndex(u *universe.Universe) map[string]*universe.Table {
	idx := make(map[string]*universe.Table, len(u.Tables))
	for _, t := range u.Tables {
		idx[t.Name] = t
	}
	return idx
}

const analysisConcurrency = 4

// crossReferenceObjects emits an obj_<oid>_table_<tid> cross-reference for
// every table name an object's expanded select resolves against a known
// table.
func (a *analyzer) crossReferenceObjects() {
	objects := a.u.Objects()
	perObject := concurrentMap(objects, analysisConcurrency, func(o *universe.Object) []universe.CrossReference {
		sql := a.u.SelectSQL(o)
		if sql == "" {
			return nil
		}
		var refs []universe.CrossReference
		for _, name := range extractTableReferences(sql) {
			if t, ok := a.tablesByName[name]; ok {
				refs = append(refs, universe.CrossReference{
					Key: fmt.Sprintf("obj_%d_table_%d", o.ID, t.ID), Type: "object_table",
					ObjectID: o.ID, ObjectName: o.Name, TableID: t.ID, TableName: t.Name,
				})
			}
		}
		return refs
	})
	for _, refs := range perObject {
		a.u.CrossReferences = append(a.u.CrossReferences, refs...)
	}
}

// crossReferenceJoins emits a join_<jid>_table_<tid> cross-reference for
// every table name a join's reconstructed statement resolves against a
// known table.
func (a *analyzer) crossReferenceJoins() {
	perJoin := concurrentMap(a.u.Joins, analysisConcurrency, func(j *universe.Join) []universe.CrossReference {
		stmt := a.u.JoinStatement(j)
		var refs []universe.CrossReference
		for _, name := range extractTableReferences(stmt) {
			if t, ok := a.tablesByName[name]; ok {
				refs = append(refs, universe.CrossReference{
					Key: fmt.Sprintf("join_%d_table_%d", j.ID, t.ID), Type: "join_table",
					JoinID: j.ID, JoinStatement: stmt, TableID: t.ID, TableName: t.Name,
				})
			}
		}
		return refs
	})
	for _, refs := range perJoin {
		a.u.CrossReferences = append(a.u.CrossReferences, refs...)
	}
}

// validateObjects records a broken_reference diagnostic for every table
// name an object's select/where mentions that isn't a known table, and an
// orphaned_object diagnostic for any object whose select resolves zero
// table references at all.
func (a *analyzer) validateObjects() {
	for _, o := range a.u.Objects() {
		selectSQL := a.u.SelectSQL(o)
		whereSQL := a.u.WhereSQL(o)

		a.reportBrokenReferences(o, "select", selectSQL)
		a.reportBrokenReferences(o, "where", whereSQL)

		if selectSQL != "" && len(extractTableReferences(selectSQL)) == 0 {
			a.u.Diagnostics = append(a.u.Diagnostics, universe.Diagnostic{
				Kind: universe.KindOrphanedObject, Severity: universe.SeverityWarning,
				ObjectID: o.ID, ObjectName: o.Name,
				Message: fmt.Sprintf("object %q has no table references in its select clause", o.Name),
			})
		}
	}
}

func (a *analyzer) reportBrokenReferences(o *universe.Object, sqlKind, sql string) {
	if sql == "" {
		return
	}
	for _, name := range extractTableReferences(sql) {
		if _, ok := a.tablesByName[name]; ok {
			continue
		}
		a.u.Diagnostics = append(a.u.Diagnostics, universe.Diagnostic{
			Kind: universe.KindBrokenReference, Severity: universe.SeverityWarning,
			ObjectID: o.ID, ObjectName: o.Name, SQLKind: sqlKind, Reference: name,
			Message: fmt.Sprintf("object %q references non-existent table %q in %s clause", o.Name, name, sqlKind),
		})
	}
}

// buildDependencyGraph maps each object id to the table names its select
// and where SQL reference: the select's names followed by the where's, so
// a name referenced by both appears twice.
func (a *analyzer) buildDependencyGraph() {
	for _, o := range a.u.Objects() {
		var deps []string
		deps = append(deps, extractTableReferences(a.u.SelectSQL(o))...)
		deps = append(deps, extractTableReferences(a.u.WhereSQL(o))...)
		a.u.DependencyGraph[o.ID] = deps
	}
}

// buildEnhancedTables synthesizes the reporting-oriented view of every
// table: a display-safe name, alias validity, column count, and reverse
// lookups of where the table is used, derived from the cross-references
// already collected.
func (a *analyzer) buildEnhancedTables() {
	for _, t := range a.u.Tables {
		name := t.Name
		if !isDisplayableTableName(name, a.opts) {
			name = fmt.Sprintf("UNNAMED_TABLE_%d", t.ID)
		}
		isValidAlias := t.IsAlias()
		if t.IsAlias() {
			if _, ok := a.u.TableIndex[t.ParentID]; !ok {
				isValidAlias = false
				a.u.Diagnostics = append(a.u.Diagnostics, universe.Diagnostic{
					Kind: universe.KindInvalidAlias, Severity: universe.SeverityWarning,
					ObjectID: t.ID, ObjectName: t.Name,
					Message: fmt.Sprintf("table %q is an alias of unknown parent table id %d", t.Name, t.ParentID),
				})
			}
		}
		a.u.EnhancedTables[t.ID] = &universe.EnhancedTable{
			ID: t.ID, Name: name, Schema: t.Schema,
			IsAlias: t.IsAlias(), IsValidAlias: isValidAlias,
		}
	}

	for _, ref := range a.u.CrossReferences {
		et, ok := a.u.EnhancedTables[ref.TableID]
		if !ok {
			continue
		}
		switch ref.Type {
		case "object_table":
			et.UsedInObjects = append(et.UsedInObjects, ref.ObjectID)
		case "join_table":
			et.UsedInJoins = append(et.UsedInJoins, ref.JoinID)
		}
	}
}

// isDisplayableTableName reports whether a table's raw name is usable as
// a display name: non-empty, not all whitespace, at most
// opts.MaxTableNameLength characters, and at least opts.PrintableRatio
// printable.
func isDisplayableTableName(name string, opts config.Options) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	runes := []rune(name)
	if len(runes) > opts.MaxTableNameLength {
		return false
	}
	printable := 0
	for _, r := range runes {
		if unicode.IsPrint(r) {
			printable++
		}
	}
	ratio := float64(printable) / float64(len(runes))
	return ratio >= opts.PrintableRatio
}

// buildTableColumns builds the reverse table-id -> columns index and
// fills in each enhanced table's column count.
func (a *analyzer) buildTableColumns() {
	for _, col := range a.u.Columns {
		if col.Table == nil {
			a.u.Diagnostics = append(a.u.Diagnostics, universe.Diagnostic{
				Kind: universe.KindInvalidAlias, Severity: universe.SeverityWarning,
				ObjectID: col.ID, ObjectName: col.Name,
				Message: fmt.Sprintf("column %q references unknown owning table id %d", col.Name, col.TableID),
			})
			continue
		}
		a.u.TableColumns[col.Table.ID] = append(a.u.TableColumns[col.Table.ID], col)
		if et, ok := a.u.EnhancedTables[col.Table.ID]; ok {
			et.ColumnCount++
		}
	}
}

// buildJoinDetails resolves each join's terms against the table index for
// reporting.
func (a *analyzer) buildJoinDetails() {
	for _, j := range a.u.Joins {
		detail := &universe.JoinDetail{
			ID: j.ID, Statement: a.u.JoinStatement(j), Expression: j.Expression,
			TermCount: int(j.TermCount),
		}
		for _, term := range j.Terms {
			t, ok := a.u.TableIndex[term.TableID]
			if !ok {
				continue
			}
			detail.TablesInvolved = append(detail.TablesInvolved, universe.JoinTableRef{
				TableID: t.ID, TableName: t.Name, Column: term.Column,
			})
		}
		a.u.JoinDetails[j.ID] = detail
	}
}

// buildContextDetails collects the set of tables touched by each context's
// joins, via the join details built above.
func (a *analyzer) buildContextDetails() {
	for _, ctx := range a.u.Contexts {
		seen := map[uint32]bool{}
		detail := &universe.ContextDetail{ID: ctx.ID, Name: ctx.Name, Description: ctx.Description, JoinIDs: ctx.JoinIDs}
		for _, joinID := range ctx.JoinIDs {
			jd, ok := a.u.JoinDetails[joinID]
			if !ok {
				continue
			}
			for _, ref := range jd.TablesInvolved {
				if !seen[ref.TableID] {
					seen[ref.TableID] = true
					detail.TablesInvolved = append(detail.TablesInvolved, ref.TableID)
				}
			}
		}
		a.u.ContextDetails[ctx.ID] = detail
	}
}

// analyzeContextIncompatibilities finds, for every object whose select
// references tables spanning multiple contexts, any pair of those contexts
// whose join sets are disjoint (§4.5).
func (a *analyzer) analyzeContextIncompatibilities() {
	for _, o := range a.u.Objects() {
		refs := extractTableReferences(a.u.SelectSQL(o))
		if len(refs) == 0 {
			continue
		}
		refNames := map[string]bool{}
		for _, r := range refs {
			refNames[r] = true
		}

		var touched []uint32
		for _, ctx := range a.u.Contexts {
			detail := a.u.ContextDetails[ctx.ID]
			if detail == nil {
				continue
			}
			for _, tid := range detail.TablesInvolved {
				if t, ok := a.u.TableIndex[tid]; ok && refNames[t.Name] {
					touched = append(touched, ctx.ID)
					break
				}
			}
		}
		if len(touched) < 2 {
			continue
		}

		for i := 0; i < len(touched); i++ {
			for j := i + 1; j < len(touched); j++ {
				if a.contextsAreIncompatible(touched[i], touched[j]) {
					a.u.ContextIncompatibilities = append(a.u.ContextIncompatibilities, universe.ContextIncompatibility{
						ObjectID: o.ID, ObjectName: o.Name,
						Context1ID: touched[i], Context1Name: a.contextName(touched[i]),
						Context2ID: touched[j], Context2Name: a.contextName(touched[j]),
					})
				}
			}
		}
	}
}

func (a *analyzer) contextsAreIncompatible(ctx1ID, ctx2ID uint32) bool {
	d1, d2 := a.u.ContextDetails[ctx1ID], a.u.ContextDetails[ctx2ID]
	if d1 == nil || d2 == nil {
		return false
	}
	joins2 := make(map[uint32]bool, len(d2.JoinIDs))
	for _, j := range d2.JoinIDs {
		joins2[j] = true
	}
	for _, j := range d1.JoinIDs {
		if joins2[j] {
			return false
		}
	}
	return true
}

func (a *analyzer) contextName(id uint32) string {
	for _, ctx := range a.u.Contexts {
		if ctx.ID == id {
			return ctx.Name
		}
	}
	return fmt.Sprintf("Context_%d", id)
}

// buildLOVDefinitions walks the class tree collecting every object that
// names a list-of-values source.
func (a *analyzer) buildLOVDefinitions() {
	for _, o := range a.u.Objects() {
		if o.LOVName == "" {
			continue
		}
		a.u.LOVDefinitions[o.ID] = universe.LOVDefinition{
			ObjectID: o.ID, ObjectName: o.Name, LOVName: o.LOVName, SelectSQL: a.u.SelectSQL(o),
		}
	}
}
