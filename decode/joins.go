package decode

import (
	"github.com/dpeckham/unvread/internal/cursor"
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeJoins reads the mandatory Joins; section (§4.1): the join
// expressions between table terms, later expanded into executable SQL-like
// text by Universe.JoinStatement.
func (d *decoder) decodeJoins() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerJoins)
	if err != nil {
		return err
	}
	if err := c.Skip(8); err != nil {
		return wrapStructural(unvfmt.MarkerJoins, c, err)
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerJoins, c, err)
	}

	d.u.Joins = make([]*universe.Join, 0, count)
	for i := uint32(0); i < count; i++ {
		j, err := d.readJoin(c)
		if err != nil {
			return wrapStructural(unvfmt.MarkerJoins, c, err)
		}
		d.u.Joins = append(d.u.Joins, j)
	}
	if err := c.Skip(8); err != nil {
		return wrapStructural(unvfmt.MarkerJoins, c, err)
	}
	return nil
}

func (d *decoder) readJoin(c *cursor.Cursor) (*universe.Join, error) {
	id, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(20); err != nil {
		return nil, err
	}
	expr, _, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(8); err != nil {
		return nil, err
	}
	termCount, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	terms := make([]universe.JoinTerm, 0, termCount)
	for t := uint32(0); t < termCount; t++ {
		name, _, err := c.ReadString()
		if err != nil {
			return nil, err
		}
		tableID, err := c.ReadU32LE()
		if err != nil {
			return nil, err
		}
		terms = append(terms, universe.JoinTerm{Column: name, TableID: tableID})
	}
	return &universe.Join{ID: id, Expression: expr, TermCount: termCount, Terms: terms}, nil
}
