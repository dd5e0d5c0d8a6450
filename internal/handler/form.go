package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

// Grid form field names. Entry i submits "e.<i>.<field>"; "count" holds the
// number of entries and "date" the selected date as YYYY-MM-DD.
const (
	formDate  = "date"
	formCount = "count"

	fieldName         = "name"
	fieldPersonCount  = "person_count"
	fieldDate         = "date"
	fieldArrivalTime  = "arrival_time"
	fieldLandingTime  = "landing_time"
	fieldFlightNumber = "flight_number"
	fieldPlateNumber  = "plate_number"
	fieldKeys         = "keys"
	fieldNote         = "note"
	fieldDone         = "done"
	fieldShift        = "shift"
)

// maxFormEntries bounds "count" so a forged form cannot make the server
// allocate an arbitrary number of entries.
const maxFormEntries = 5000

func entryField(i int, field string) string {
	return "e." + strconv.Itoa(i) + "." + field
}

// parseGridForm reads the selected date and the edited entries posted by the
// roster grid. A body over the size limit yields an *http.MaxBytesError.
func parseGridForm(r *http.Request) (dateValue string, entries []domain.RosterEntry, err error) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("read form: %w", err)
		}
		return "", nil, fmt.Errorf("%w: unreadable form: %v", domain.ErrValidation, err)
	}
	dateValue = r.PostForm.Get(formDate)
	if _, ok := roster.ParseDate(dateValue); !ok {
		return "", nil, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, dateValue)
	}

	n, err := strconv.Atoi(r.PostForm.Get(formCount))
	if err != nil || n < 0 || n > maxFormEntries {
		return "", nil, fmt.Errorf("%w: invalid entry count", domain.ErrValidation)
	}

	entries = make([]domain.RosterEntry, n)
	for i := range entries {
		get := func(field string) string { return r.PostForm.Get(entryField(i, field)) }
		entries[i] = domain.RosterEntry{
			Name:         get(fieldName),
			PersonCount:  get(fieldPersonCount),
			Date:         get(fieldDate),
			ArrivalTime:  get(fieldArrivalTime),
			LandingTime:  get(fieldLandingTime),
			FlightNumber: get(fieldFlightNumber),
			PlateNumber:  get(fieldPlateNumber),
			Keys:         get(fieldKeys),
			Note:         get(fieldNote),
			Done:         get(fieldDone) != "",
			Shift:        get(fieldShift),
		}
	}
	return dateValue, entries, nil
}
