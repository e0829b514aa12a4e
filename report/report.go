// Package report renders the human-readable summary a downstream
// consumer produces from a decoded, analyzed universe -- statistics, the
// table list with alias annotations, a validation-error summary, and
// cross-reference counts (spec.md §6 names this a renderer, out of the
// core's scope; SPEC_FULL.md carries it as a thin consumer of package
// universe).
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dpeckham/unvread/internal/collections"
	"github.com/dpeckham/unvread/universe"
)

// Render produces the textual report for u.
func Render(u *universe.Universe) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Universe: %s\n", displayName(u))
	if u.Parameters.Description != "" {
		fmt.Fprintf(&b, "  %s\n", u.Parameters.Description)
	}
	b.WriteString("\n")

	stats := u.Statistics()
	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "  classes:    %d\n", stats.Classes)
	fmt.Fprintf(&b, "  objects:    %d\n", stats.Objects)
	fmt.Fprintf(&b, "  conditions: %d\n", stats.Conditions)
	fmt.Fprintf(&b, "  tables:     %d\n", stats.Tables)
	fmt.Fprintf(&b, "  aliases:    %d\n", stats.Aliases)
	fmt.Fprintf(&b, "  joins:      %d\n", stats.Joins)
	fmt.Fprintf(&b, "  contexts:   %d\n", stats.Contexts)
	b.WriteString("\n")

	b.WriteString("Tables:\n")
	tables := sortedTables(u)
	names := collections.TransformSlice(tables, func(t *universe.Table) string { return t.Name })
	for i, t := range tables {
		if t.IsAlias() {
			fmt.Fprintf(&b, "  %s (alias of table %d)\n", names[i], t.ParentID)
		} else {
			fmt.Fprintf(&b, "  %s\n", names[i])
		}
	}
	b.WriteString("\n")

	if len(u.CustomParameters) > 0 {
		b.WriteString("Custom Parameters:\n")
		for k, v := range collections.SortedMapIter(u.CustomParameters) {
			fmt.Fprintf(&b, "  %s = %s\n", k, v)
		}
		b.WriteString("\n")
	}

	if len(u.Diagnostics) > 0 {
		fmt.Fprintf(&b, "Diagnostics (%d):\n", len(u.Diagnostics))
		for _, d := range u.Diagnostics {
			fmt.Fprintf(&b, "  [%s/%s] %s\n", d.Severity, d.Kind, d.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Cross-references: %d\n", len(u.CrossReferences))

	return b.String()
}

func displayName(u *universe.Universe) string {
	if u.Parameters.UniverseName != "" {
		return u.Parameters.UniverseName
	}
	return u.Parameters.UniverseFilename
}

func sortedTables(u *universe.Universe) []*universe.Table {
	out := make([]*universe.Table, len(u.Tables))
	copy(out, u.Tables)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
