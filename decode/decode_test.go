package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpeckham/unvread/config"
	"github.com/dpeckham/unvread/internal/unvfmt"
	"github.com/dpeckham/unvread/universe"
)

func TestDecodeFullFixture(t *testing.T) {
	u, err := Decode(buildFixture(), config.Default())
	assert.NoError(t, err)

	assert.Equal(t, "universe.unv", u.Parameters.UniverseFilename)
	assert.Equal(t, "Sales Universe", u.Parameters.UniverseName)
	assert.EqualValues(t, 42, u.Parameters.Revision)
	assert.EqualValues(t, 30, u.Parameters.QueryTimeLimit)
	assert.EqualValues(t, 10, u.Parameters.CostEstimateWarningLimit)
	assert.Equal(t, "sales", u.Parameters.Domain)

	assert.Equal(t, map[string]string{"DOCUMENT_UPDATED_BY": "alice"}, u.CustomParameters)

	if assert.Len(t, u.Tables, 1) {
		assert.Equal(t, "Customer", u.Tables[0].Name)
		assert.False(t, u.Tables[0].IsAlias())
	}
	assert.Same(t, u.Tables[0], u.TableIndex[1])

	if assert.Len(t, u.Columns, 1) {
		col := u.Columns[0]
		assert.Equal(t, "id", col.Name)
		assert.Same(t, u.TableIndex[1], col.Table)
	}

	if assert.Len(t, u.Joins, 1) {
		j := u.Joins[0]
		assert.EqualValues(t, 2, j.TermCount)
		assert.Equal(t, "Customer.id = Customer.cust_id", u.JoinStatement(j))
	}

	if assert.Len(t, u.Contexts, 1) {
		assert.Equal(t, "Default", u.Contexts[0].Name)
		assert.Equal(t, []uint32{1}, u.Contexts[0].JoinIDs)
	}

	assert.Empty(t, u.Links)
	assert.Empty(t, u.Hierarchies)

	if assert.Len(t, u.Classes, 1) {
		cl := u.Classes[0]
		assert.Equal(t, "Demographics", cl.Name)
		if assert.Len(t, cl.Objects, 1) {
			obj := cl.Objects[0]
			assert.Equal(t, "Name", obj.Name)
			assert.True(t, obj.Visible)
			assert.Equal(t, "Customer.name", u.SelectSQL(obj))
		}
	}
	assert.Same(t, u.Classes[0].Objects[0], u.ObjectIndex[5])

	assert.Empty(t, u.OptionalSections)
}

func TestDecodeToleratesMissingHierarchiesSection(t *testing.T) {
	u, err := Decode(buildFixtureWithoutHierarchies(), config.Default())
	assert.NoError(t, err)
	assert.Empty(t, u.Hierarchies)

	// The rest of the model, including the mandatory class tree decoded
	// after hierarchies, must still be fully populated.
	assert.Len(t, u.Tables, 1)
	if assert.Len(t, u.Classes, 1) {
		assert.Len(t, u.Classes[0].Objects, 1)
	}

	found := false
	for _, d := range u.Diagnostics {
		if d.Kind == universe.KindDecoding && d.Marker == unvfmt.MarkerHierarchies {
			found = true
		}
	}
	assert.True(t, found, "expected a decoding diagnostic for the absent Hierarchies; marker")
}

func TestDecodeMissingMandatoryMarkerIsStructuralError(t *testing.T) {
	data := buildFixture()
	// Corrupt the Parameters; marker text so Locate can't find it.
	corrupted := append([]byte(nil), data...)
	for i := range corrupted {
		if corrupted[i] == 'P' && i+1 < len(corrupted) && corrupted[i+1] == 'a' {
			corrupted[i] = 'X'
			break
		}
	}

	_, err := Decode(corrupted, config.Default())
	assert.Error(t, err)
	var structErr *StructuralError
	assert.ErrorAs(t, err, &structErr)
}

func TestDecodeParentIDMismatchIsAssertionError(t *testing.T) {
	data := buildFixture()

	// The root class's parent_id sits right after its id (4 bytes) and
	// name (u16 length-prefixed string). "Demographics" is 12 bytes long,
	// so the byte at body+16(header counts)+4+2+12 is the parent_id
	// field; set it nonzero so it disagrees with the synthetic
	// root-class expectation of zero.
	body := indexOfMarkerBody(data, unvfmt.MarkerObjects)
	assert.GreaterOrEqual(t, body, 0)
	parentIDOffset := body + 16 + 4 + 2 + len("Demographics")
	data[parentIDOffset] = 0x01

	_, err := Decode(data, config.Default())
	assert.Error(t, err)
	var assertErr *AssertionError
	assert.ErrorAs(t, err, &assertErr)
}

func indexOfMarkerBody(data []byte, marker string) int {
	needle := append([]byte{0x00}, []byte(marker)...)
	for i := 0; i+len(needle) <= len(data); i++ {
		match := true
		for j := range needle {
			if data[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i + len(needle)
		}
	}
	return -1
}
