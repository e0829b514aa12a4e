// Package universe holds the in-memory semantic model a universe binary
// file decodes into: classes of business objects, their SQL expressions,
// the underlying tables/aliases/columns, joins, contexts, hierarchies,
// links, and the diagnostics/cross-references produced by analysis.
//
// The model is write-once: decode.Decode populates it top-to-bottom, then
// freezes it before analysis. Analysis (see package analyze) only ever
// appends to the analyzer-owned fields below (CrossReferences,
// Diagnostics, DependencyGraph, EnhancedTables, ...); it never mutates a
// decoded entity.
package universe

import "time"

// Universe is the root aggregate produced by decode.Decode.
type Universe struct {
	Parameters       Parameters
	CustomParameters map[string]string

	Tables       []*Table
	VirtualTables []*VirtualTable
	Columns      []*Column
	Joins        []*Join
	Contexts     []*Context
	Links        []*Link
	Hierarchies  []*Hierarchy
	Classes      []*Class // root classes only; walk Subclasses for the rest

	// OptionalSections holds the raw, unparsed byte range captured for each
	// optional marker present in the file (§4.3). Absent markers have no
	// entry.
	OptionalSections map[string][]byte

	// TableIndex and ObjectIndex are built by the model assembler (§4.4)
	// immediately after the relevant sections decode, so later sections can
	// resolve ids while decoding is still in progress.
	TableIndex  map[uint32]*Table
	ObjectIndex map[uint32]*Object

	// Sidecar holds best-effort metadata recovered from a zip sidecar's
	// UNW_Storage/ResourceHeader trees. Decode never sets it; cmd/unvdump
	// fills it from zipsrc.ExtractSidecar for zip input. Nil when no
	// sidecar was read.
	Sidecar *Sidecar

	// Analyzer outputs. Populated by package analyze, except
	// StoredProcedureParameters, which decode.Decode fills directly from
	// package decode/procedure once the Tables; section's trailing bytes
	// are known -- everything else here is computed strictly after the
	// model is frozen.
	CrossReferences           []CrossReference
	Diagnostics               []Diagnostic
	DependencyGraph           map[uint32][]string
	StoredProcedureParameters map[string][]ProcedureParameter
	EnhancedTables            map[uint32]*EnhancedTable
	TableColumns              map[uint32][]*Column
	JoinDetails               map[uint32]*JoinDetail
	ContextDetails            map[uint32]*ContextDetail
	ContextIncompatibilities  []ContextIncompatibility
	LOVDefinitions            map[uint32]LOVDefinition
}

// New returns an empty universe with every collection initialized, so
// callers never have to nil-check before ranging.
func New() *Universe {
	return &Universe{
		CustomParameters:          map[string]string{},
		OptionalSections:          map[string][]byte{},
		TableIndex:                map[uint32]*Table{},
		ObjectIndex:               map[uint32]*Object{},
		DependencyGraph:           map[uint32][]string{},
		StoredProcedureParameters: map[string][]ProcedureParameter{},
		EnhancedTables:            map[uint32]*EnhancedTable{},
		TableColumns:              map[uint32][]*Column{},
		JoinDetails:               map[uint32]*JoinDetail{},
		ContextDetails:            map[uint32]*ContextDetail{},
		LOVDefinitions:            map[uint32]LOVDefinition{},
	}
}

// Parameters holds universe-level settings (§3).
type Parameters struct {
	UniverseFilename string
	UniverseName     string
	Revision         uint32
	Description      string
	CreatedBy        string
	ModifiedBy       string
	CreatedDate      time.Time
	ModifiedDate     time.Time
	// QueryTimeLimit and CostEstimateWarningLimit are in minutes, having
	// been divided down from the seconds the file stores.
	QueryTimeLimit            uint32
	QueryRowLimit             uint32
	ObjectStrategy            string
	CostEstimateWarningLimit  uint32
	LongTextLimit             uint32
	Comments                  string
	Domain                    string
	DBMSEngine                string
	NetworkLayer              string
}

// Statistics summarizes the decoded model (§6).
type Statistics struct {
	Classes    int
	Objects    int
	Conditions int
	Tables     int
	Aliases    int
	Joins      int
	Contexts   int
}

// Statistics visits the class tree and counts classes/objects/conditions,
// combining that with the table/join/context counts already held as flat
// slices.
func (u *Universe) Statistics() Statistics {
	stats := Statistics{
		Joins:    len(u.Joins),
		Contexts: len(u.Contexts),
	}
	for _, t := range u.Tables {
		if t.IsAlias() {
			stats.Aliases++
		} else {
			stats.Tables++
		}
	}
	for _, c := range u.Classes {
		walkClass(c, &stats)
	}
	return stats
}

func walkClass(c *Class, stats *Statistics) {
	stats.Classes++
	stats.Objects += len(c.Objects)
	stats.Conditions += len(c.Conditions)
	for _, sub := range c.Subclasses {
		walkClass(sub, stats)
	}
}

// WalkClasses calls fn for every class reachable from the universe's root
// classes, depth-first, including the roots themselves.
func (u *Universe) WalkClasses(fn func(*Class)) {
	for _, c := range u.Classes {
		walkClassTree(c, fn)
	}
}

func walkClassTree(c *Class, fn func(*Class)) {
	fn(c)
	for _, sub := range c.Subclasses {
		walkClassTree(sub, fn)
	}
}

// Objects returns every object reachable from the class tree, in
// depth-first traversal order.
func (u *Universe) Objects() []*Object {
	var out []*Object
	u.WalkClasses(func(c *Class) {
		out = append(out, c.Objects...)
	})
	return out
}

// Conditions returns every condition reachable from the class tree, in
// depth-first traversal order.
func (u *Universe) Conditions() []*Condition {
	var out []*Condition
	u.WalkClasses(func(c *Class) {
		out = append(out, c.Conditions...)
	})
	return out
}
