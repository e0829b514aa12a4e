package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFixedWidthIntegers(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0xff, 0x00}
	c := New(buf)

	u32, err := c.ReadU32LE()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), u32)

	u16, err := c.ReadU16LE()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x00ff), u16)
}

func TestReadBool(t *testing.T) {
	c := New([]byte{0x00, 0x01, 0x2a})

	b, err := c.ReadBool()
	assert.NoError(t, err)
	assert.False(t, b)

	b, err = c.ReadBool()
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = c.ReadBool()
	assert.NoError(t, err)
	assert.True(t, b)
}

func TestReadStringZeroLengthIsAbsent(t *testing.T) {
	c := New([]byte{0x00, 0x00})
	s, ok, err := c.ReadString()
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", s)
}

func TestReadStringStripsCRLF(t *testing.T) {
	raw := []byte("hel\r\nlo")
	buf := append([]byte{byte(len(raw)), 0x00}, raw...)
	c := New(buf)

	s, ok, err := c.ReadString()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestReadStringRepairsInvalidUTF8(t *testing.T) {
	raw := []byte{0x68, 0x69, 0xff, 0x21}
	buf := append([]byte{byte(len(raw)), 0x00}, raw...)
	c := New(buf)

	s, ok, err := c.ReadString()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, s)
}

func TestSeekOutOfRange(t *testing.T) {
	c := New([]byte{0x01, 0x02})
	assert.Error(t, c.Seek(3))
	assert.NoError(t, c.Seek(2))
}

func TestReadBytesPastEndErrors(t *testing.T) {
	c := New([]byte{0x01})
	_, err := c.ReadBytes(5)
	assert.Error(t, err)
}

func TestSkipAdvancesPosition(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})
	assert.NoError(t, c.Skip(3))
	assert.Equal(t, 3, c.Pos())
}
