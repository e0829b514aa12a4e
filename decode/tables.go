package decode

import (
	"github.com/dpeckham/unvread/internal/cursor"
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeTables reads the mandatory Tables; section (§4.1): the source
// database's tables and the aliases derived from them.
func (d *decoder) decodeTables() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerTables)
	if err != nil {
		return err
	}

	if err := c.Skip(2); err != nil {
		return wrapStructural(unvfmt.MarkerTables, c, err)
	}
	if _, _, err := c.ReadString(); err != nil { // database username, unused
		return wrapStructural(unvfmt.MarkerTables, c, err)
	}
	schema, _, err := c.ReadString()
	if err != nil {
		return wrapStructural(unvfmt.MarkerTables, c, err)
	}
	if _, err := c.ReadU32LE(); err != nil { // max_table_id
		return wrapStructural(unvfmt.MarkerTables, c, err)
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerTables, c, err)
	}

	d.u.Tables = make([]*universe.Table, 0, count)
	for i := uint32(0); i < count; i++ {
		t, err := d.readTable(c, schema)
		if err != nil {
			return wrapStructural(unvfmt.MarkerTables, c, err)
		}
		d.u.Tables = append(d.u.Tables, t)
	}

	end := d.sectionEnd(d.index[unvfmt.MarkerTables])
	if tail := c.Pos(); tail >= 0 && tail <= end && end <= len(d.data) {
		d.tablesTail = d.data[tail:end]
	}
	return nil
}

func (d *decoder) readTable(c *cursor.Cursor, schema string) (*universe.Table, error) {
	id, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(19); err != nil {
		return nil, err
	}
	name, _, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	parentID, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(9); err != nil {
		return nil, err
	}
	flag, err := c.ReadBool()
	if err != nil {
		return nil, err
	}
	if flag {
		n, err := c.ReadU16LE()
		if err != nil {
			return nil, err
		}
		if err := c.Skip(4*int(n) + 3); err != nil {
			return nil, err
		}
	} else {
		if err := c.Skip(1); err != nil {
			return nil, err
		}
	}
	return &universe.Table{ID: id, ParentID: parentID, Name: name, Schema: schema}, nil
}

// assembleTableIndex builds Universe.TableIndex immediately after tables
// decode, so every later section can resolve table ids while the rest of
// the file is still being decoded (§4.4).
func (d *decoder) assembleTableIndex() {
	for _, t := range d.u.Tables {
		d.u.TableIndex[t.ID] = t
	}
}

// decodeVirtualTables reads the mandatory Virtual Tables; section (§4.1):
// derived tables expressed as a select statement instead of a name.
func (d *decoder) decodeVirtualTables() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerVirtualTables)
	if err != nil {
		return err
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerVirtualTables, c, err)
	}
	d.u.VirtualTables = make([]*universe.VirtualTable, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := c.ReadU32LE()
		if err != nil {
			return wrapStructural(unvfmt.MarkerVirtualTables, c, err)
		}
		sel, _, err := c.ReadString()
		if err != nil {
			return wrapStructural(unvfmt.MarkerVirtualTables, c, err)
		}
		d.u.VirtualTables = append(d.u.VirtualTables, &universe.VirtualTable{ID: id, Select: sel})
	}
	return nil
}
