package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/parking-roster/internal/roster"
)

func TestParseDate_AcceptedFormats(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"01.06.2025",
		"1.6.2025",
		"  01.06.2025 ",
		"2025-06-01",
		"2025-6-1",
	} {
		t.Run(in, func(t *testing.T) {
			got, ok := roster.ParseDate(in)
			require.True(t, ok)
			assert.True(t, got.Equal(want), "got %v", got)
		})
	}
}

func TestParseDate_Absent(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"31.02.2025",  // day out of range
		"2025/06/01",  // wrong separator
		"01-06-2025",  // day-first with dashes
		"01.06.25",    // two-digit year
		"01.06.2025x", // trailing garbage
		"zítra",
		"2025-13-01",
	} {
		t.Run(in, func(t *testing.T) {
			_, ok := roster.ParseDate(in)
			assert.False(t, ok)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "03.06.2025", roster.FormatDate(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)))
}

func TestSameDay_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)

	assert.True(t, roster.SameDay(a, b))
	assert.False(t, roster.SameDay(a, b.AddDate(0, 0, 1)))
}
