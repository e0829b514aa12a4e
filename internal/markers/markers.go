// Package markers locates the section-start offsets inside a universe byte
// image. The image is scanned once per marker, up front, before any section
// is decoded (§4.2).
package markers

import (
	"bytes"

	"github.com/dpeckham/unvread/internal/unvfmt"
)

// disambiguationWindow is how far before/after a candidate match the
// location rule looks for an embedded, un-prefixed occurrence of the same
// marker text -- a sign the candidate is a false positive sitting inside
// preceding free text.
const disambiguationWindow = 20

// Index maps a marker name to the offset of its section body (the byte
// immediately after the matched `0x00`+marker sequence). Markers absent
// from the image have no entry.
type Index map[string]int

// Locate scans data for every marker in unvfmt.AllMarkers and returns the
// offsets of their section bodies. Running Locate again on the same data
// is idempotent: it always recomputes the same map, since it performs a
// stateless scan with no dependency on prior results.
func Locate(data []byte) Index {
	idx := make(Index)
	for _, marker := range unvfmt.AllMarkers() {
		if offset, ok := locateOne(data, marker); ok {
			idx[marker] = offset
		}
	}
	return idx
}

func locateOne(data []byte, marker string) (int, bool) {
	markerBytes := append([]byte{0x00}, []byte(marker)...)
	plain := []byte(marker)

	begin := bytes.Index(data, markerBytes)
	for begin != -1 {
		end := begin + len(markerBytes)

		beforeStart := begin - disambiguationWindow
		if beforeStart < 0 {
			beforeStart = 0
		}
		beforeHit := bytes.Index(data[beforeStart:begin], plain) != -1

		afterEnd := end + disambiguationWindow
		if afterEnd > len(data) {
			afterEnd = len(data)
		}
		afterHit := bytes.Index(data[end:afterEnd], plain) != -1

		if !beforeHit && !afterHit {
			return end, true
		}

		// False positive: resume the search past the disambiguation window.
		resumeFrom := end + disambiguationWindow
		if resumeFrom > len(data) {
			return 0, false
		}
		next := bytes.Index(data[resumeFrom:], markerBytes)
		if next == -1 {
			return 0, false
		}
		begin = resumeFrom + next
	}
	return 0, false
}
