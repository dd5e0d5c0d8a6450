// Package domain contains the core data types for the parking roster.
// This package has no dependencies outside the standard library and is
// imported by every other internal package (roster, repo, service, handler).
package domain

import "time"

// Column labels of a roster table, in display order. They double as the
// header labels written to snapshot tabs, so they stay in the spreadsheet's
// language.
const (
	ColName         = "Jméno"
	ColPersonCount  = "Počet osob"
	ColDate         = "Datum"
	ColArrivalTime  = "Příjezd"
	ColLandingTime  = "Přílet"
	ColFlightNumber = "Číslo letu"
	ColPlateNumber  = "SPZ"
	ColKeys         = "Klíče"
	ColNote         = "Poznámka"
	ColDone         = "Vyřízeno"
	ColShift        = "Směna"
)

// KeysHeld is the only non-empty value accepted for RosterEntry.Keys.
const KeysHeld = "X"

// Columns returns the fixed 11-column schema of every roster table.
// A fresh slice is returned so callers may not corrupt the schema.
func Columns() []string {
	return []string{
		ColName, ColPersonCount, ColDate, ColArrivalTime, ColLandingTime,
		ColFlightNumber, ColPlateNumber, ColKeys, ColNote, ColDone, ColShift,
	}
}

// RosterEntry is one arrival or departure a parking shift has to handle.
// Name through Note come from the source sheet; Keys, Done and Shift are
// filled in by staff.
type RosterEntry struct {
	Name         string `json:"name"`
	PersonCount  string `json:"person_count"`
	Date         string `json:"date"` // DD.MM.YYYY of the selected date
	ArrivalTime  string `json:"arrival_time"`
	LandingTime  string `json:"landing_time"`
	FlightNumber string `json:"flight_number"`
	PlateNumber  string `json:"plate_number"`
	Keys         string `json:"keys"` // "" or KeysHeld
	Note         string `json:"note"`
	Done         bool   `json:"done"`
	Shift        string `json:"shift"`
}

// Cells returns the entry's values in Columns order.
// Done is rendered as "True"/"False", the form staff already know from the
// snapshot tabs.
func (e RosterEntry) Cells() []string {
	done := "False"
	if e.Done {
		done = "True"
	}
	return []string{
		e.Name, e.PersonCount, e.Date, e.ArrivalTime, e.LandingTime,
		e.FlightNumber, e.PlateNumber, e.Keys, e.Note, done, e.Shift,
	}
}

// RosterTable is the roster for a single date.
// Entries is never nil; an empty roster still carries the full schema.
type RosterTable struct {
	Date    time.Time
	Entries []RosterEntry
}

// Columns returns the table's column schema, which is always Columns().
func (t RosterTable) Columns() []string {
	return Columns()
}

// Empty reports whether the table has no entries.
func (t RosterTable) Empty() bool {
	return len(t.Entries) == 0
}
