package decode

import (
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeLinks reads the mandatory Links; section (§4.1): references to
// other universes by filename.
func (d *decoder) decodeLinks() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerLinks)
	if err != nil {
		return err
	}
	if _, err := c.ReadU32LE(); err != nil { // max_link_id
		return wrapStructural(unvfmt.MarkerLinks, c, err)
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerLinks, c, err)
	}

	d.u.Links = make([]*universe.Link, 0, count)
	for i := uint32(0); i < count; i++ {
		name, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerLinks, c, err)
		}
		id, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerLinks, c, err)
		}
		desc, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerLinks, c, err)
		}
		linked, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerLinks, c, err)
		}
		d.u.Links = append(d.u.Links, &universe.Link{
			ID: id, Name: name, Description: desc, LinkedUniverseFilename: linked,
		})
	}
	return nil
}
