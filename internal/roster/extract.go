package roster

import (
	"strings"
	"time"

	"github.com/pkordes/parking-roster/internal/domain"
)

// noteSeparator joins the two source note columns.
const noteSeparator = " | "

// Extract maps one raw source row to the roster entries it contributes on
// date: one for the outbound leg when the outbound date matches, one for the
// return leg when the return date matches. Both checks are independent, so a
// row yields zero, one or two entries, outbound first.
func Extract(row []string, date time.Time, layout Layout) []domain.RosterEntry {
	row = pad(row, layout.Width)

	var out []domain.RosterEntry
	if d, ok := ParseDate(layout.cell(row, FieldOutboundDate)); ok && SameDay(d, date) {
		e := baseEntry(row, date, layout)
		e.ArrivalTime = layout.cell(row, FieldOutboundTime)
		e.FlightNumber = layout.cell(row, FieldOutboundFlight)
		out = append(out, e)
	}
	if d, ok := ParseDate(layout.cell(row, FieldReturnDate)); ok && SameDay(d, date) {
		e := baseEntry(row, date, layout)
		e.LandingTime = layout.cell(row, FieldReturnTime)
		e.FlightNumber = layout.cell(row, FieldReturnFlight)
		out = append(out, e)
	}
	return out
}

// baseEntry fills the fields shared by both legs. Staff-owned fields
// (Keys, Done, Shift) start empty.
func baseEntry(row []string, date time.Time, layout Layout) domain.RosterEntry {
	return domain.RosterEntry{
		Name:        layout.cell(row, FieldName),
		PersonCount: layout.cell(row, FieldPersons),
		Date:        FormatDate(date),
		PlateNumber: layout.cell(row, FieldPlate),
		Note:        joinNotes(layout.cell(row, FieldNotePrimary), layout.cell(row, FieldNoteSecondary)),
	}
}

// joinNotes joins the non-blank notes with noteSeparator.
func joinNotes(notes ...string) string {
	kept := make([]string, 0, len(notes))
	for _, n := range notes {
		if strings.TrimSpace(n) != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, noteSeparator)
}

// pad returns row extended with empty cells to width. The input slice is
// never modified.
func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
