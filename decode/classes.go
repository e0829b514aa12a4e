package decode

import (
	"github.com/dpeckham/unvread/internal/cursor"
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

// decodeClasses reads the mandatory Objects; section (§4.1): despite its
// name, it holds the class tree (classes, objects, conditions), decoded
// last among the mandatory sections because its SQL expressions reference
// tables and objects that must already be resolvable.
func (d *decoder) decodeClasses() error {
	c, err := d.requireSectionCursor(unvfmt.MarkerObjects)
	if err != nil {
		return err
	}
	if _, err := c.ReadU32LE(); err != nil { // class_count
		return wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if _, err := c.ReadU32LE(); err != nil { // object_count
		return wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if _, err := c.ReadU32LE(); err != nil { // condition_count
		return wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	rootCount, err := c.ReadU32LE()
	if err != nil {
		return wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	d.u.Classes = make([]*universe.Class, 0, rootCount)
	for i := uint32(0); i < rootCount; i++ {
		cl, err := d.readClass(c, nil)
		if err != nil {
			return err
		}
		d.u.Classes = append(d.u.Classes, cl)
	}
	return nil
}

func (d *decoder) readClass(c *cursor.Cursor, parent *universe.Class) (*universe.Class, error) {
	id, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	name, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	parentID, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := checkParentID(unvfmt.MarkerObjects, classIDOrZero(parent), parentID); err != nil {
		return nil, err
	}
	description, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	cl := &universe.Class{ID: id, ParentID: parentID, Name: name, Description: description}

	if err := c.Skip(7); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	objectCount, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	cl.Objects = make([]*universe.Object, 0, objectCount)
	for i := uint32(0); i < objectCount; i++ {
		o, err := d.readObject(c, cl)
		if err != nil {
			return nil, err
		}
		cl.Objects = append(cl.Objects, o)
	}

	conditionCount, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	cl.Conditions = make([]*universe.Condition, 0, conditionCount)
	for i := uint32(0); i < conditionCount; i++ {
		cond, err := d.readCondition(c, cl)
		if err != nil {
			return nil, err
		}
		cl.Conditions = append(cl.Conditions, cond)
	}

	subclassCount, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	cl.Subclasses = make([]*universe.Class, 0, subclassCount)
	for i := uint32(0); i < subclassCount; i++ {
		sub, err := d.readClass(c, cl)
		if err != nil {
			return nil, err
		}
		cl.Subclasses = append(cl.Subclasses, sub)
	}

	return cl, nil
}

func (d *decoder) readObject(c *cursor.Cursor, parent *universe.Class) (*universe.Object, error) {
	id, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	name, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	parentID, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := checkParentID(unvfmt.MarkerObjects, parent.ID, parentID); err != nil {
		return nil, err
	}
	description, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	selectTableCount, err := c.ReadU16LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(4 * int(selectTableCount)); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	whereTableCount, err := c.ReadU16LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(4 * int(whereTableCount)); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	selectExpr, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	whereExpr, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	format, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if _, _, err := c.ReadString(); err != nil { // unknown string
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	lovName, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(2); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	visibility, err := c.ReadU8()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(55); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	return &universe.Object{
		ID: id, ParentID: parentID, Parent: parent, Name: name, Description: description,
		Select: selectExpr, Where: whereExpr, Format: format, LOVName: lovName,
		Visible: visibility != unvfmt.VisibilityHidden,
	}, nil
}

func (d *decoder) readCondition(c *cursor.Cursor, parent *universe.Class) (*universe.Condition, error) {
	id, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	name, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	parentID, err := c.ReadU32LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := checkParentID(unvfmt.MarkerObjects, parent.ID, parentID); err != nil {
		return nil, err
	}
	description, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	whereTableCount, err := c.ReadU16LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(4 * int(whereTableCount)); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	unknownTableCount, err := c.ReadU16LE()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}
	if err := c.Skip(4 * int(unknownTableCount)); err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	whereExpr, _, err := c.ReadString()
	if err != nil {
		return nil, wrapStructural(unvfmt.MarkerObjects, c, err)
	}

	return &universe.Condition{ID: id, ParentID: parentID, Parent: parent, Name: name, Description: description, Where: whereExpr}, nil
}

// assembleObjectIndex builds Universe.ObjectIndex from the decoded class
// tree, once decoding has finished (§4.4). It runs after decodeClasses
// because objects only exist once the whole tree has been walked.
func (d *decoder) assembleObjectIndex() {
	d.u.WalkClasses(func(cl *universe.Class) {
		for _, o := range cl.Objects {
			d.u.ObjectIndex[o.ID] = o
		}
	})
}

// checkParentID enforces the parent_id invariant every nested record
// carries: a root-level record must declare parent_id 0, and a nested
// record's declared parent_id must agree with its owning record's id.
func checkParentID(marker string, expected, got uint32) error {
	if expected != got {
		return &AssertionError{Marker: marker, Expected: expected, Got: got}
	}
	return nil
}

// classIDOrZero lets the root-class case (parent == nil) reuse
// checkParentID without a nil-guard at every call site.
func classIDOrZero(c *universe.Class) uint32 {
	if c == nil {
		return 0
	}
	return c.ID
}
