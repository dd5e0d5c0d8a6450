package roster

import (
	"time"

	"github.com/pkordes/parking-roster/internal/domain"
)

// Build assembles the roster for date from every source row. rows[0] is the
// sheet's header row and is skipped. Entries keep source row order, and
// within a row the outbound leg precedes the return leg. The result always
// carries the full column schema, even when nothing matches.
func Build(rows [][]string, date time.Time, layout Layout) domain.RosterTable {
	table := domain.RosterTable{Date: date, Entries: []domain.RosterEntry{}}
	if len(rows) < 2 {
		return table
	}
	for _, row := range rows[1:] {
		table.Entries = append(table.Entries, Extract(row, date, layout)...)
	}
	return table
}
