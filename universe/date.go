package universe

import (
	"time"

	"github.com/dpeckham/unvread/internal/unvfmt"
)

// DateFromIndex returns the date corresponding to a universe date index
// (§4.1): day index 2442964 is 1976-07-04, and every other index is that
// many days offset from it. Indexes below the epoch still decode (as a
// date before 1976-07-04) but report ok=false so the caller can record a
// decoding diagnostic without aborting the parse.
func DateFromIndex(index uint32) (t time.Time, ok bool) {
	offsetDays := int64(index) - unvfmt.DateEpochIndex
	return unvfmt.DateEpoch.AddDate(0, 0, int(offsetDays)), index >= unvfmt.DateEpochIndex
}
