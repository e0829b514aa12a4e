package decode

import (
	"fmt"
	"time"

	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeParameters reads the mandatory Parameters; section (§4.1): the
// universe's identity, ownership, creation/modification dates, and the
// query/cost/text limits, which the file stores in seconds but the model
// exposes in minutes.
func (d *decoder) decodeParameters() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerParameters)
	if err != nil {
		return err
	}

	if err := c.Skip(8); err != nil { // two unknown u32s
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}

	p := &d.u.Parameters

	if p.UniverseFilename, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.UniverseName, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.Revision, err = c.ReadU32LE(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if err := c.Skip(2); err != nil { // unknown u16
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.Description, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.CreatedBy, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.ModifiedBy, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}

	createdIdx, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	modifiedIdx, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	d.decodeDate(unvfmt.MarkerParameters, "created_date", createdIdx, &p.CreatedDate)
	d.decodeDate(unvfmt.MarkerParameters, "modified_date", modifiedIdx, &p.ModifiedDate)

	querySeconds, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	p.QueryTimeLimit = querySeconds / 60

	if p.QueryRowLimit, err = c.ReadU32LE(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if _, _, err = c.ReadString(); err != nil { // unknown string
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.ObjectStrategy, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if err := c.Skip(1); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}

	costSeconds, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	p.CostEstimateWarningLimit = costSeconds / 60

	if p.LongTextLimit, err = c.ReadU32LE(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if err := c.Skip(4); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.Comments, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if err := c.Skip(12); err != nil { // 3 unknown u32s
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.Domain, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.DBMSEngine, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}
	if p.NetworkLayer, _, err = c.ReadString(); err != nil {
		return wrapStructural(unvfmt.MarkerParameters, c, err)
	}

	return nil
}

// decodeDate resolves a date index into dst, recording a decoding
// diagnostic instead of failing the parse when the index predates the
// universe date epoch.
func (d *decoder) decodeDate(marker, field string, index uint32, dst *time.Time) {
	t, ok := universe.DateFromIndex(index)
	*dst = t
	if !ok {
		d.addDiagnostic(universe.Diagnostic{
			Kind: universe.KindDecoding, Severity: universe.SeverityWarning,
			Marker:  marker,
			Message: fmt.Sprintf("%s index %d predates the universe date epoch", field, index),
		})
	}
}

// decodeCustomParameters reads the Parameters_6_0; section (§4.1): an
// arbitrary name/value map configured on the Parameters tab of the
// Designer dialog. An absent marker leaves CustomParameters empty without
// a diagnostic.
func (d *decoder) decodeCustomParameters() {
	c, ok, err := d.sectionCursor(unvfmt.MarkerCustomParams)
	if err != nil || !ok {
		return
	}
	count, err := c.ReadU32LE()
	if err != nil {
		d.addDiagnostic(universe.Diagnostic{
			Kind: universe.KindDecoding, Severity: universe.SeverityWarning,
			Marker: unvfmt.MarkerCustomParams, Offset: c.Pos(),
			Message: "truncated custom parameters count: " + err.Error(),
		})
		return
	}
	for i := uint32(0); i < count; i++ {
		name, _, err := c.ReadString()
		if err != nil {
			break
		}
		value, _, err := c.ReadString()
		if err != nil {
			break
		}
		d.u.CustomParameters[name] = value
	}
}
