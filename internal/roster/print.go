package roster

import (
	"strings"

	"github.com/pkordes/parking-roster/internal/domain"
)

// BuildPrintTable flattens an edited roster into its print layout, inserting
// a column header row before every shift group except the first.
//
// A group is a run of entries sharing the same non-empty Shift label.
// Entries with an empty label are neutral: they neither start nor end a
// group, so "Pavel", "", "Pavel" stays one group.
func BuildPrintTable(table domain.RosterTable) domain.PrintTable {
	out := domain.NewPrintTable()

	current := ""
	seenGroup := false
	for _, e := range table.Entries {
		label := strings.TrimSpace(e.Shift)
		if label != "" && label != current {
			if seenGroup {
				out.AppendHeader()
			}
			seenGroup = true
			current = label
		}
		out.AppendEntry(e)
	}
	return out
}
