package decode

import "fmt"

// StructuralError is a fatal decode failure: a mandatory marker is
// missing, a header is truncated, or a count read from the file is
// impossible to satisfy against the remaining bytes (§7, error kind 1).
type StructuralError struct {
	Marker string
	Offset int
	Err    error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("universe: structural error in section %q at offset %d: %v", e.Marker, e.Offset, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// AssertionError is a fatal decode failure: a child record's declared
// parent_id disagrees with its owning record's id (§7, error kind 3).
type AssertionError struct {
	Marker   string
	Expected uint32
	Got      uint32
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("universe: assertion violation in %q: expected parent_id %d, got %d", e.Marker, e.Expected, e.Got)
}
