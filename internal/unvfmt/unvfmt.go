// Package unvfmt holds the constants that describe the universe binary
// container's layout: section markers, the date epoch, and the SQL sentinel
// bytes. Nothing in this package touches I/O; it is pure format description,
// shared by the cursor, marker index, and section decoders.
package unvfmt

import "time"

// Markers of the sections decoded in fixed order. Decoding order follows
// this list exactly, per the sequential control-flow requirement: table
// index must exist before columns/joins/SQL expansion can resolve ids.
// All are mandatory except Parameters_6_0; and Hierarchies;, whose absence
// is not an error.
const (
	MarkerParameters      = "Parameters;"
	MarkerCustomParams    = "Parameters_6_0;"
	MarkerTables          = "Tables;"
	MarkerVirtualTables   = "Virtual Tables;"
	MarkerColumnsID       = "Columns Id;"
	MarkerJoins           = "Joins;"
	MarkerContexts        = "Contexts;"
	MarkerLinks           = "Links;"
	MarkerHierarchies     = "Hierarchies;"
	MarkerObjects         = "Objects;"
)

// MandatoryMarkers lists the markers decoded in fixed order before the
// optional sections and the class tree. Parameters_6_0; and Hierarchies;
// are decoded only when present.
var MandatoryMarkers = []string{
	MarkerParameters,
	MarkerCustomParams,
	MarkerTables,
	MarkerVirtualTables,
	MarkerColumnsID,
	MarkerJoins,
	MarkerContexts,
	MarkerLinks,
	MarkerHierarchies,
}

// OptionalMarkers is the closed set of ~30 markers captured as raw,
// unparsed byte ranges for forward compatibility (§4.3). Order here has no
// decoding significance; it only controls how raw ranges are validated
// against AllMarkers below.
var OptionalMarkers = []string{
	"Columns;",
	"Parameters_4_1;",
	"Parameters_5_0;",
	"Parameters_11_5;",
	"Object_Formats;",
	"Object_ExtraFormats;",
	"Dynamic_Class_Descriptions;",
	"Dynamic_Object_Descriptions;",
	"Dynamic_Property_Descriptions;",
	"Audit;",
	"Dimensions;",
	"OLAPInfo;",
	"Graphical_Info;",
	"Crystal_References;",
	"XML-LOV;",
	"Integrity;",
	"AggregateNavigation;",
	"BoundedColumns;",
	"BuildOrigin_v6;",
	"CompulsaryType;",
	"Deleted References;",
	"DELETED_HISTORY;",
	"Dot_Tables;",
	"Downward;",
	"FormatLocaleSort;",
	"FormatVersion;",
	"Joins Extensions;",
	"Key References;",
	"KernelPageFormat;",
	"Platform;",
	"UNICODE ON;",
	"Upward;",
	"Upward_LocalIndexing;",
	"Upward_Mapping;",
	"Upward_Override;",
	"Upward_Override_New;",
	"WindowsPageFormat;",
}

// AllMarkers is the full closed set (mandatory + optional) the marker index
// scans for, in the order the location rule should attempt them.
func AllMarkers() []string {
	all := make([]string, 0, len(MandatoryMarkers)+len(OptionalMarkers))
	all = append(all, MandatoryMarkers...)
	all = append(all, OptionalMarkers...)
	return all
}

// DateEpochIndex is the universe date index corresponding to DateEpoch.
const DateEpochIndex = 2442964

// DateEpoch is 1976-07-04, the zero point of the universe date index.
var DateEpoch = time.Date(1976, time.July, 4, 0, 0, 0, 0, time.UTC)

// SQL sentinel bytes embedded in select/where expressions (§4.3).
const (
	SentinelTemplateSlot byte = 0x01
	SentinelObjectID     byte = 0x02
	SentinelTableID      byte = 0x03
)

// VisibilityHidden is the byte value that marks an Object as hidden; any
// other value means visible (§3, §9 open question).
const VisibilityHidden byte = 0x36

// DefaultMaxTableNameLength and DefaultMinPrintableRatio are the default thresholds used
// to flag a table name as corrupt in the analyzer's enhanced table view.
const (
	DefaultMaxTableNameLength = 256
	DefaultMinPrintableRatio  = 0.70
)
