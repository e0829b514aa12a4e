package decode

import (
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeContexts reads the mandatory Contexts; section (§4.1): named sets
// of joins forming coherent query paths.
func (d *decoder) decodeContexts() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerContexts)
	if err != nil {
		return err
	}
	if _, err := c.ReadU32LE(); err != nil { // max_context_id
		return wrapStructural(unvfmt.MarkerContexts, c, err)
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerContexts, c, err)
	}

	d.u.Contexts = make([]*universe.Context, 0, count)
	for i := uint32(0); i < count; i++ {
		name, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerContexts, c, err)
		}
		id, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerContexts, c, err)
		}
		desc, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerContexts, c, err)
		}
		joinCount, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerContexts, c, err)
		}
		ctx := &universe.Context{ID: id, Name: name, Description: desc, JoinIDs: make([]uint32, 0, joinCount)}
		for j := uint32(0); j < joinCount; j++ {
			joinID, err := c.ReadU32LE()
			if err != nil {
				return wrapStructural(unvfmt.MarkerContexts, c, err)
			}
			ctx.JoinIDs = append(ctx.JoinIDs, joinID)
		}
		d.u.Contexts = append(d.u.Contexts, ctx)
	}
	return nil
}
