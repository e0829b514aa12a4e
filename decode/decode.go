// Package decode implements the single-pass, offset-directed decoder over
// the universe binary container: it locates section markers, decodes each
// mandatory section in the fixed order the format requires, assembles the
// cross-entity indexes, and captures optional sections without aborting
// the parse when one is absent or malformed.
package decode

import (
	"fmt"

	"github.com/dpeckham/unvread/config"
	"github.com/dpeckham/unvread/decode/procedure"
	"github.com/dpeckham/unvread/internal/cursor"
	"github.com/dpeckham/unvread/internal/markers"
	"github.com/dpeckham/unvread/universe"
)

// decoder carries the state shared by every section decoder: the byte
// image, the marker index, the universe under construction, and the
// options controlling optional-section behavior.
type decoder struct {
	data    []byte
	index   markers.Index
	u       *universe.Universe
	opts    config.Options
	skipSet map[string]bool

	// tablesTail is the raw byte range following the Tables; section's
	// table records, captured by decodeTables for the stored-procedure
	// extractor (§4.6).
	tablesTail []byte
}

// Decode consumes a byte image and returns a fully populated universe
// model plus a diagnostics list. It never returns an error for recoverable
// problems -- those become diagnostics -- but does return one for the
// fatal cases in §7 (missing mandatory marker, truncated header,
// impossible count, or a parent_id assertion violation).
func Decode(data []byte, opts config.Options) (*universe.Universe, error) {
	d := &decoder{
		data:    data,
		index:   markers.Locate(data),
		u:       universe.New(),
		opts:    opts,
		skipSet: toSet(opts.SkipOptionalSections),
	}

	if err := d.decodeParameters(); err != nil {
		return d.u, err
	}
	d.decodeCustomParameters()
	if err := d.decodeTables(); err != nil {
		return d.u, err
	}
	d.assembleTableIndex()
	d.u.StoredProcedureParameters = procedure.Extract(d.tablesTail)
	if err := d.decodeVirtualTables(); err != nil {
		return d.u, err
	}
	if err := d.decodeColumns(); err != nil {
		return d.u, err
	}
	if err := d.decodeJoins(); err != nil {
		return d.u, err
	}
	if err := d.decodeContexts(); err != nil {
		return d.u, err
	}
	if err := d.decodeLinks(); err != nil {
		return d.u, err
	}
	d.decodeHierarchies()
	d.decodeOptionalSections()
	if err := d.decodeClasses(); err != nil {
		return d.u, err
	}
	d.assembleObjectIndex()

	return d.u, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// sectionCursor seeks to marker's section-body offset and returns a fresh
// cursor positioned there. Missing mandatory markers are a StructuralError;
// missing optional markers are reported via ok=false.
func (d *decoder) sectionCursor(marker string) (*cursor.Cursor, bool, error) {
	offset, ok := d.index[marker]
	if !ok {
		return nil, false, nil
	}
	c := cursor.New(d.data)
	if err := c.Seek(offset); err != nil {
		return nil, false, &StructuralError{Marker: marker, Offset: offset, Err: err}
	}
	return c, true, nil
}

func (d *decoder) requireSectionCursor(marker string) (*cursor.Cursor, error) {
	c, ok, err := d.sectionCursor(marker)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &StructuralError{Marker: marker, Offset: -1, Err: fmt.Errorf("mandatory marker not found")}
	}
	return c, nil
}

func (d *decoder) addDiagnostic(diag universe.Diagnostic) {
	d.u.Diagnostics = append(d.u.Diagnostics, diag)
}

// wrapStructural turns a lower-level read error into a StructuralError
// naming the section and the cursor's offset.
func wrapStructural(marker string, c *cursor.Cursor, err error) error {
	if err == nil {
		return nil
	}
	return &StructuralError{Marker: marker, Offset: c.Pos(), Err: err}
}

// sectionEnd returns the next-higher marker offset in the index (or
// end-of-file if none is higher), used as the exclusive end of captured
// optional-section byte ranges and of the Tables; section tail.
func (d *decoder) sectionEnd(afterOffset int) int {
	end := len(d.data)
	for _, off := range d.index {
		if off > afterOffset && off < end {
			end = off
		}
	}
	return end
}
