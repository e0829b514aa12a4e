package universe

// DiagnosticKind classifies a non-fatal finding recorded while decoding or
// analyzing a universe (§7: error kinds 2, 4, and 5 all surface as
// diagnostics; kinds 1 and 3 are fatal and returned as a Go error instead).
type DiagnosticKind string

const (
	KindOptionalSectionFailure DiagnosticKind = "optional_section_failure"
	KindBrokenReference        DiagnosticKind = "broken_reference"
	KindOrphanedObject         DiagnosticKind = "orphaned_object"
	KindInvalidAlias           DiagnosticKind = "invalid_alias"
	KindDecoding               DiagnosticKind = "decoding"
)

// Severity is an info/warning hint for the diagnostic; nothing in this
// module treats severity as actionable beyond display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a non-fatal finding. Diagnostics are append-only and
// ordered by time of discovery; decode.Decode never reorders or
// deduplicates them.
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	Message  string

	// Marker/Offset apply to decoding diagnostics (optional-section
	// failures, truncated/absent sections).
	Marker string
	Offset int

	// ObjectID/ObjectName/SQLKind/Reference apply to reference
	// diagnostics (broken_reference, orphaned_object, invalid_alias --
	// for invalid_alias these hold the table or column's own id/name,
	// not the missing parent's).
	ObjectID   uint32
	ObjectName string
	SQLKind    string // "select" or "where"
	Reference  string
}
