package universe

// CrossReference records one resolved object-to-table or join-to-table
// reference discovered by the cross-reference analyzer (§4.5). Key follows
// the "obj_<oid>_table_<tid>" / "join_<jid>_table_<tid>" convention.
type CrossReference struct {
	Key    string
	Type   string // "object_table" or "join_table"
	TableID   uint32
	TableName string

	ObjectID   uint32
	ObjectName string

	JoinID        uint32
	JoinStatement string
}

// ProcedureParameter is one <Parameter name=... type=... value=... />
// extracted by the stored-procedure extractor (§4.6).
type ProcedureParameter struct {
	Name  string
	Type  string
	Value string
}

// EnhancedTable is the reporting-oriented synthesis of a Table described in
// §4.5: a display-safe name, alias validity, and reverse-lookup lists of
// where the table is used.
type EnhancedTable struct {
	ID            uint32
	Name          string
	Schema        string
	IsAlias       bool
	IsValidAlias  bool
	ColumnCount   int
	UsedInObjects []uint32
	UsedInJoins   []uint32
}

// JoinTableRef names one table term participating in a join, as surfaced
// by JoinDetail.
type JoinTableRef struct {
	TableID   uint32
	TableName string
	Column    string
}

// JoinDetail is the reporting-oriented view of a Join with its terms
// resolved against the table index.
type JoinDetail struct {
	ID             uint32
	Statement      string
	Expression     string
	TermCount      int
	TablesInvolved []JoinTableRef
}

// ContextDetail is the reporting-oriented view of a Context: the set of
// tables touched by its joins.
type ContextDetail struct {
	ID             uint32
	Name           string
	Description    string
	JoinIDs        []uint32
	TablesInvolved []uint32
}

// ContextIncompatibility records a pair of contexts that share no joins,
// discovered for an object whose select references both (§4.5).
type ContextIncompatibility struct {
	ObjectID     uint32
	ObjectName   string
	Context1ID   uint32
	Context1Name string
	Context2ID   uint32
	Context2Name string
}

// LOVDefinition is a derived index entry for an object exposing a list of
// values.
type LOVDefinition struct {
	ObjectID   uint32
	ObjectName string
	LOVName    string
	SelectSQL  string
}
