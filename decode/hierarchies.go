package decode

import (
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeHierarchies reads the Hierarchies; section (§4.1): named ordered
// sequences of object ids defining drill levels. Some universe files omit
// this section entirely, so a missing marker is reported as an info
// diagnostic rather than aborting the parse -- the mandatory class tree
// decoded afterward must still run.
func (d *decoder) decodeHierarchies() {
	d.u.Hierarchies = make([]*universe.Hierarchy, 0)

	c, ok, err := d.sectionCursor(unvfmt.MarkerHierarchies)
	if err != nil || !ok {
		d.addDiagnostic(universe.Diagnostic{
			Kind: universe.KindDecoding, Severity: universe.SeverityInfo,
			Marker:  unvfmt.MarkerHierarchies,
			Message: "Hierarchies; section absent, skipping",
		})
		return
	}
	if _, err := c.ReadU32LE(); err != nil { // max_hierarchy_id
		d.addDiagnostic(universe.Diagnostic{
			Kind: universe.KindDecoding, Severity: universe.SeverityWarning,
			Marker: unvfmt.MarkerHierarchies, Offset: c.Pos(),
			Message: "truncated hierarchies header: " + err.Error(),
		})
		return
	}
	count, err := c.ReadU32LE()
	if err != nil {
		d.addDiagnostic(universe.Diagnostic{
			Kind: universe.KindDecoding, Severity: universe.SeverityWarning,
			Marker: unvfmt.MarkerHierarchies, Offset: c.Pos(),
			Message: "truncated hierarchies count: " + err.Error(),
		})
		return
	}

	for i := uint32(0); i < count; i++ {
		name, _, err := c.ReadString()
		if err != nil {
			break
		}
		id, err := c.ReadU32LE()
		if err != nil {
			break
		}
		desc, _, err := c.ReadString()
		if err != nil {
			break
		}
		levelCount, err := c.ReadU32LE()
		if err != nil {
			break
		}
		h := &universe.Hierarchy{ID: id, Name: name, Description: desc, ObjectIDs: make([]uint32, 0, levelCount)}
		truncated := false
		for l := uint32(0); l < levelCount; l++ {
			objID, err := c.ReadU32LE()
			if err != nil {
				truncated = true
				break
			}
			h.ObjectIDs = append(h.ObjectIDs, objID)
		}
		d.u.Hierarchies = append(d.u.Hierarchies, h)
		if truncated {
			break
		}
	}
}
