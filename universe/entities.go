package universe

// Table is a source database table or alias (§3). IsAlias holds iff
// ParentID != 0; an alias whose ParentID is not a known table id is
// flagged invalid during analysis (EnhancedTable). Whether the parent is
// itself an alias is not checked.
type Table struct {
	ID       uint32
	ParentID uint32
	// Name is the raw decoded name; it may be empty when the file carries
	// a null/corrupt name.
	Name   string
	Schema string
}

// IsAlias reports whether this table stands in for another table under an
// alternate name.
func (t *Table) IsAlias() bool {
	return t.ParentID != 0
}

// VirtualTable stands in for a derived table expressed as SQL.
type VirtualTable struct {
	ID     uint32
	Select string
}

// Column is a source database column, optionally owned by a table.
type Column struct {
	ID      uint32
	Name    string
	TableID uint32
	// Table is resolved by the model assembler when TableID names a known
	// table; nil when the owning table id is unknown (permitted per §3).
	Table *Table
}

// FullName returns "table.column" when the owning table resolved, and ok
// reports whether it did.
func (c *Column) FullName() (name string, ok bool) {
	if c.Table == nil {
		return c.Name, false
	}
	return c.Table.Name + "." + c.Name, true
}

// Class is a nested container of objects, conditions, and subclasses
// (§3). ParentID is zero for root classes.
type Class struct {
	ID          uint32
	ParentID    uint32
	Name        string
	Description string
	Objects     []*Object
	Conditions  []*Condition
	Subclasses  []*Class
}

// Object is an exposable queryable term (§3). Select and Where hold the
// raw, sentinel-tagged expressions as decoded; use Universe.SelectSQL /
// Universe.WhereSQL to obtain the expanded form.
type Object struct {
	ID          uint32
	ParentID    uint32
	Parent      *Class
	Name        string
	Description string
	Select      string
	Where       string
	Format      string
	LOVName     string
	// Visible is false only when the decoded visibility byte equals
	// unvfmt.VisibilityHidden (0x36); any other value means visible.
	Visible bool
}

// FullName returns "class.object", or just the object name if it has no
// owning class (should not occur outside synthetic/unknown objects).
func (o *Object) FullName() string {
	if o.Parent != nil {
		return o.Parent.Name + "." + o.Name
	}
	return o.Name
}

// Condition is a predicate attached to a class (§3): same shape as Object
// minus the format/LOV fields, with only a where expression.
type Condition struct {
	ID          uint32
	ParentID    uint32
	Parent      *Class
	Name        string
	Description string
	Where       string
}

// FullName returns "class.condition".
func (c *Condition) FullName() string {
	if c.Parent != nil {
		return c.Parent.Name + "." + c.Name
	}
	return c.Name
}

// JoinTerm is one (column, table) pair in a join's term list.
type JoinTerm struct {
	Column  string
	TableID uint32
}

// Join is a SQL join expression between two or more table terms (§3).
type Join struct {
	ID         uint32
	Expression string
	TermCount  uint32
	Terms      []JoinTerm
}

// Context is a named set of joins forming a coherent query path.
type Context struct {
	ID          uint32
	Name        string
	Description string
	JoinIDs     []uint32
}

// Link is a reference to another universe by filename.
type Link struct {
	ID                     uint32
	Name                   string
	Description            string
	LinkedUniverseFilename string
}

// Hierarchy is a named ordered sequence of object ids defining drill
// levels.
type Hierarchy struct {
	ID          uint32
	Name        string
	Description string
	ObjectIDs   []uint32
}

// Sidecar holds best-effort metadata recovered from a zip sidecar's
// UNW_Storage/ResourceHeader directory trees (a supplemental feature
// beyond the binary section format itself; see SPEC_FULL.md).
type Sidecar struct {
	ConnectionInfo   map[string]string
	CustomParameters map[string]string
	HiddenItemIDs    []uint32
	Descriptor       map[string]string
}
