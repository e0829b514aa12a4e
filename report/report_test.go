package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpeckham/unvread/universe"
)

func TestRenderIncludesNameStatisticsAndTables(t *testing.T) {
	u := universe.New()
	u.Parameters.UniverseName = "Sales Universe"
	u.Parameters.Description = "quarterly sales reporting"

	customer := &universe.Table{ID: 1, Name: "Customer"}
	customerAlias := &universe.Table{ID: 2, Name: "Client", ParentID: 1}
	u.Tables = append(u.Tables, customer, customerAlias)
	u.TableIndex[1], u.TableIndex[2] = customer, customerAlias

	cls := &universe.Class{ID: 10, Name: "Demographics"}
	cls.Objects = append(cls.Objects, &universe.Object{ID: 1, Name: "Name", Parent: cls})
	u.Classes = append(u.Classes, cls)

	out := Render(u)
	assert.Contains(t, out, "Universe: Sales Universe")
	assert.Contains(t, out, "quarterly sales reporting")
	assert.Contains(t, out, "classes:    1")
	assert.Contains(t, out, "objects:    1")
	assert.Contains(t, out, "tables:     1")
	assert.Contains(t, out, "aliases:    1")
	assert.Contains(t, out, "Client (alias of table 1)")
	assert.Contains(t, out, "Customer")
}

func TestRenderListsCustomParametersSorted(t *testing.T) {
	u := universe.New()
	u.CustomParameters["ZETA"] = "last"
	u.CustomParameters["ALPHA"] = "first"

	out := Render(u)
	alphaPos := strings.Index(out, "ALPHA = first")
	zetaPos := strings.Index(out, "ZETA = last")
	assert.GreaterOrEqual(t, alphaPos, 0)
	assert.GreaterOrEqual(t, zetaPos, 0)
	assert.Less(t, alphaPos, zetaPos)
}

func TestRenderFallsBackToFilenameWhenUnnamed(t *testing.T) {
	u := universe.New()
	u.Parameters.UniverseFilename = "sales.unv"
	out := Render(u)
	assert.Contains(t, out, "Universe: sales.unv")
}

func TestRenderListsDiagnosticsWhenPresent(t *testing.T) {
	u := universe.New()
	u.Diagnostics = append(u.Diagnostics, universe.Diagnostic{
		Kind: universe.KindBrokenReference, Severity: universe.SeverityWarning, Message: "bad table ref",
	})
	out := Render(u)
	assert.Contains(t, out, "Diagnostics (1):")
	assert.Contains(t, out, "bad table ref")
}

func TestRenderOmitsDiagnosticsSectionWhenEmpty(t *testing.T) {
	u := universe.New()
	out := Render(u)
	assert.NotContains(t, out, "Diagnostics")
}
