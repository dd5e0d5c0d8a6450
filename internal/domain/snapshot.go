package domain

import "time"

// Tab is a handle to a single tab (worksheet) of the shared spreadsheet.
// ID is backend specific: the sheet id for Google Sheets, the row id for
// Postgres, the sheet index for workbook files.
type Tab struct {
	ID    int64
	Title string
}

// Snapshot describes a roster saved into a date-named tab.
type Snapshot struct {
	Tab     string    `json:"tab"`
	Rows    int       `json:"rows"`    // data rows, header rows excluded
	Headers int       `json:"headers"` // inserted group header rows
	SavedAt time.Time `json:"saved_at"`
}

// SnapshotTab is a tab whose title is a roster date.
type SnapshotTab struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}
