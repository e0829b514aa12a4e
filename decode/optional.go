package decode

import (
	"fmt"

	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeOptionalSections captures the raw byte range for every optional
// marker present in the file (§4.3), skipping any name listed in
// Options.SkipOptionalSections. A single recover() trap surrounds the
// whole pass -- mirroring the "never wrap mandatory decoders, only
// optional ones" policy -- so a panic while sizing or slicing one section
// degrades to a diagnostic rather than aborting the parse.
func (d *decoder) decodeOptionalSections() {
	defer func() {
		if r := recover(); r != nil {
			d.addDiagnostic(universe.Diagnostic{
				Kind:     universe.KindOptionalSectionFailure,
				Severity: universe.SeverityInfo,
				Message:  fmt.Sprintf("optional section capture panicked: %v", r),
			})
		}
	}()

	for _, marker := range unvfmt.OptionalMarkers {
		if d.skipSet[marker] {
			continue
		}
		offset, ok := d.index[marker]
		if !ok {
			continue
		}
		end := d.sectionEnd(offset)
		if end < offset || end > len(d.data) {
			d.addDiagnostic(universe.Diagnostic{
				Kind: universe.KindOptionalSectionFailure, Severity: universe.SeverityInfo,
				Marker: marker, Offset: offset,
				Message: "optional section range is invalid, skipping capture",
			})
			continue
		}
		d.u.OptionalSections[marker] = d.data[offset:end]
	}
}
