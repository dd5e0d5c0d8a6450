// Package roster turns raw spreadsheet rows into the per-date parking roster
// and the grouped print layout written back to snapshot tabs.
// Everything here is a pure, single-pass transformation over in-memory rows.
package roster

import (
	"strings"
	"time"
)

// Accepted source date layouts, tried in order. Single-digit day and month
// are accepted because the shared sheet is typed by hand.
var dateLayouts = []string{
	"2.1.2006",
	"2006-1-2",
}

// DisplayLayout is the date form used for the entry Date field and for
// snapshot tab titles.
const DisplayLayout = "02.01.2006"

// ParseDate parses a DD.MM.YYYY or YYYY-MM-DD cell into a midnight UTC date.
// It reports false for empty or malformed text; callers treat that as
// "row does not match any date", never as a failure.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate returns the DD.MM.YYYY display form of t.
func FormatDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

// SameDay reports whether a and b fall on the same calendar day, ignoring
// time of day and location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
