package decode

import (
	"bytes"
	"encoding/binary"

	"github.com/dpeckham/unvread/internal/unvfmt"
)

// fixtureBuilder assembles a synthetic universe byte image section by
// section, in the same field order the section decoders expect. It exists
// only to give the decode tests something to decode without a real binary
// file checked into the repo.
type fixtureBuilder struct {
	buf bytes.Buffer
}

func (b *fixtureBuilder) marker(name string) {
	b.buf.WriteByte(0x00)
	b.buf.WriteString(name)
}

func (b *fixtureBuilder) u8(v uint8) {
	b.buf.WriteByte(v)
}

func (b *fixtureBuilder) boolByte(v bool) {
	if v {
		b.buf.WriteByte(1)
	} else {
		b.buf.WriteByte(0)
	}
}

func (b *fixtureBuilder) u16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *fixtureBuilder) u32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
}

func (b *fixtureBuilder) zeros(n int) {
	b.buf.Write(make([]byte, n))
}

// str writes a u16-length-prefixed string; an empty string writes a zero
// length, matching the absent-string convention ReadString expects.
func (b *fixtureBuilder) str(s string) {
	b.u16(uint16(len(s)))
	b.buf.WriteString(s)
}

func (b *fixtureBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// buildFixture assembles a minimal but complete universe image: one table,
// one column, one two-term join, one context, no links or hierarchies, and
// a single class holding one visible object whose select expression
// references the table through a sentinel byte.
func buildFixture() []byte {
	return buildFixtureImpl(true)
}

// buildFixtureWithoutHierarchies is identical to buildFixture but omits the
// Hierarchies; marker entirely, the way some real universe files do.
func buildFixtureWithoutHierarchies() []byte {
	return buildFixtureImpl(false)
}

func buildFixtureImpl(includeHierarchies bool) []byte {
	b := &fixtureBuilder{}

	b.marker(unvfmt.MarkerParameters)
	b.zeros(8)
	b.str("universe.unv")
	b.str("Sales Universe")
	b.u32(42)          // revision
	b.zeros(2)
	b.str("a test universe")
	b.str("alice")
	b.str("bob")
	b.u32(unvfmt.DateEpochIndex)     // created_date
	b.u32(unvfmt.DateEpochIndex + 1) // modified_date
	b.u32(1800) // query time limit seconds -> 30 minutes
	b.u32(5000) // query row limit
	b.str("")   // unknown string
	b.str("strategy")
	b.zeros(1)
	b.u32(600) // cost estimate warning seconds -> 10 minutes
	b.u32(2000)
	b.zeros(4)
	b.str("some comments")
	b.zeros(12)
	b.str("sales")
	b.str("oracle")
	b.str("tcpip")

	b.marker(unvfmt.MarkerCustomParams)
	b.u32(1)
	b.str("DOCUMENT_UPDATED_BY")
	b.str("alice")

	b.marker(unvfmt.MarkerTables)
	b.zeros(2)
	b.str("dbuser")
	b.str("SALES")
	b.u32(1) // max_table_id
	b.u32(1) // table_count
	b.u32(1) // id
	b.zeros(19)
	b.str("Customer")
	b.u32(0) // parent_id, not an alias
	b.zeros(9)
	b.boolByte(false)
	b.zeros(1)
	b.zeros(3) // a few bytes of trailing tail for the stored-procedure scan

	b.marker(unvfmt.MarkerVirtualTables)
	b.u32(0)

	b.marker(unvfmt.MarkerColumnsID)
	b.u32(1) // column_count
	b.u32(1) // governing count
	b.u32(1) // id
	b.u32(1) // table id
	b.str("id")

	b.marker(unvfmt.MarkerJoins)
	b.zeros(8)
	b.u32(1) // join_count
	b.u32(1) // join id
	b.zeros(20)
	b.str(" = ")
	b.zeros(8)
	b.u32(2) // term_count
	b.str("id")
	b.u32(1)
	b.str("cust_id")
	b.u32(1)
	b.zeros(8)

	b.marker(unvfmt.MarkerContexts)
	b.u32(1) // max_context_id
	b.u32(1) // count
	b.str("Default")
	b.u32(1) // id
	b.str("default query context")
	b.u32(1) // join_count
	b.u32(1) // join id

	b.marker(unvfmt.MarkerLinks)
	b.u32(0)
	b.u32(0)

	if includeHierarchies {
		b.marker(unvfmt.MarkerHierarchies)
		b.u32(0)
		b.u32(0)
	}

	b.marker(unvfmt.MarkerObjects)
	b.u32(1) // class_count
	b.u32(1) // object_count
	b.u32(0) // condition_count
	b.u32(1) // root_count

	// class: Demographics (id 10)
	b.u32(10)
	b.str("Demographics")
	b.u32(0) // parent_id, root
	b.str("customer demographics")
	b.zeros(7)
	b.u32(1) // object_count

	// object: Name (id 5)
	b.u32(5)
	b.str("Name")
	b.u32(10) // parent_id, matches class id
	b.str("customer name")
	b.u16(0) // select_table_count
	b.u16(0) // where_table_count
	b.str(string(unvfmt.SentinelTableID) + "1" + ".name")
	b.str("")
	b.str("")
	b.str("") // unknown string
	b.str("")
	b.zeros(2)
	b.u8(0x01) // visible
	b.zeros(55)

	b.u32(0) // condition_count
	b.u32(0) // subclass_count

	return b.bytes()
}
