package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

// shiftTable returns a roster whose entries carry the given shift labels
// and are named e1, e2, ...
func shiftTable(labels ...string) domain.RosterTable {
	table := domain.RosterTable{Date: day(1), Entries: []domain.RosterEntry{}}
	for i, l := range labels {
		table.Entries = append(table.Entries, domain.RosterEntry{
			Name:  "e" + string(rune('1'+i)),
			Date:  "01.06.2025",
			Shift: l,
		})
	}
	return table
}

// layoutOf renders a print table as entry names with "H" for header rows.
func layoutOf(p domain.PrintTable) []string {
	out := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		if r.Header {
			out[i] = "H"
			continue
		}
		out[i] = r.Cells[0]
	}
	return out
}

func TestBuildPrintTable_Empty(t *testing.T) {
	p := roster.BuildPrintTable(shiftTable())

	assert.Empty(t, p.Rows)
	assert.Equal(t, domain.Columns(), p.Columns)
}

func TestBuildPrintTable_Groups(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{"unlabelled", []string{"", "", ""}, []string{"e1", "e2", "e3"}},
		{"first group after blank", []string{"", "Pavel", "Pavel"}, []string{"e1", "e2", "e3"}},
		{"two groups", []string{"Pavel", "Pavel", "Jana", "Jana"}, []string{"e1", "e2", "H", "e3", "e4"}},
		{"three groups", []string{"Pavel", "Jana", "Eva"}, []string{"e1", "H", "e2", "H", "e3"}},
		{"blank is neutral", []string{"Pavel", "", "Pavel"}, []string{"e1", "e2", "e3"}},
		{"blank inside switch", []string{"Pavel", "", "Jana"}, []string{"e1", "e2", "H", "e3"}},
		{"label returns", []string{"Pavel", "Jana", "Pavel"}, []string{"e1", "H", "e2", "H", "e3"}},
		{"whitespace trimmed", []string{"Pavel", " Pavel ", "  "}, []string{"e1", "e2", "e3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := roster.BuildPrintTable(shiftTable(tt.labels...))
			assert.Equal(t, tt.want, layoutOf(p))
		})
	}
}

func TestBuildPrintTable_NeverHeaderFirst(t *testing.T) {
	for _, labels := range [][]string{{"Pavel"}, {"", "Jana"}, {"Jana", "Pavel"}} {
		p := roster.BuildPrintTable(shiftTable(labels...))
		require.NotEmpty(t, p.Rows)
		assert.False(t, p.Rows[0].Header)
	}
}

func TestBuildPrintTable_HeaderRowRepeatsColumns(t *testing.T) {
	p := roster.BuildPrintTable(shiftTable("Pavel", "Jana"))

	require.Len(t, p.Rows, 3)
	assert.True(t, p.Rows[1].Header)
	assert.Equal(t, domain.Columns(), p.Rows[1].Cells)
	assert.Equal(t, 1, p.HeaderCount())
}

func TestBuildPrintTable_EntryCells(t *testing.T) {
	table := shiftTable("Pavel")
	table.Entries[0].Done = true
	table.Entries[0].Keys = domain.KeysHeld

	p := roster.BuildPrintTable(table)

	require.Len(t, p.Rows, 1)
	cells := p.Rows[0].Cells
	assert.Equal(t, "X", cells[7])
	assert.Equal(t, "True", cells[9])
	assert.Equal(t, "Pavel", cells[10])
}

func TestBuildPrintTable_UnlabelledIsIdempotent(t *testing.T) {
	table := shiftTable("", "", "")

	first := roster.BuildPrintTable(table)
	second := roster.BuildPrintTable(table)

	assert.Equal(t, first, second)
	assert.Zero(t, first.HeaderCount())
	for i, r := range first.Rows {
		assert.Equal(t, table.Entries[i].Cells(), r.Cells)
	}
}

func TestPrintTable_Values(t *testing.T) {
	p := roster.BuildPrintTable(shiftTable("Pavel", "Jana"))

	v := p.Values()

	require.Len(t, v, 4)
	assert.Equal(t, domain.Columns(), v[0])
	assert.Equal(t, domain.Columns(), v[2])
}
