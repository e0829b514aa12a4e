package procedure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpeckham/unvread/universe"
)

func TestExtractEmptyTailYieldsEmptyMap(t *testing.T) {
	out := Extract(nil)
	assert.Empty(t, out)
}

func TestExtractWellFormedXML(t *testing.T) {
	tail := []byte(`junk bytes before ` +
		`<Procedure name="CalcTotal"><Parameter name="p1" type="int" value="5"/>` +
		`<Parameter name="p2" type="string" value="abc"/></Procedure>` +
		` trailing junk`)

	out := Extract(tail)
	params, ok := out["CalcTotal"]
	if assert.True(t, ok) {
		assert.Equal(t, []universe.ProcedureParameter{
			{Name: "p1", Type: "int", Value: "5"},
			{Name: "p2", Type: "string", Value: "abc"},
		}, params)
	}
}

func TestExtractFallsBackToRegexOnMalformedXML(t *testing.T) {
	tail := []byte(`<Procedure name="Bad"><Parameter name="p1" type="int" value="5 & 3"/></Procedure>`)

	out := Extract(tail)
	params, ok := out["Bad"]
	if assert.True(t, ok) {
		assert.Len(t, params, 1)
		assert.Equal(t, "p1", params[0].Name)
		assert.Equal(t, "int", params[0].Type)
		assert.Equal(t, "5 & 3", params[0].Value)
	}
}

func TestExtractDropsProceduresWithNoParameters(t *testing.T) {
	tail := []byte(`<Procedure name="Empty"></Procedure>`)
	out := Extract(tail)
	assert.NotContains(t, out, "Empty")
}

func TestExtractMultipleProcedures(t *testing.T) {
	tail := []byte(
		`<Procedure name="First"><Parameter name="a" type="int" value="1"/></Procedure>` +
			`<Procedure name="Second"><Parameter name="b" type="int" value="2"/></Procedure>`,
	)
	out := Extract(tail)
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")
}
