package domain

import "fmt"

// PrintRow is one row of a PrintTable. Header rows repeat the column labels
// and separate consecutive shift groups.
type PrintRow struct {
	Header bool     `json:"header"`
	Cells  []string `json:"cells"`
}

// PrintTable is the print/export form of a roster: entries flattened to
// text with group header rows inserted between shifts.
type PrintTable struct {
	Columns []string   `json:"columns"`
	Rows    []PrintRow `json:"rows"`
}

// NewPrintTable returns an empty PrintTable with the roster schema.
func NewPrintTable() PrintTable {
	return PrintTable{Columns: Columns(), Rows: []PrintRow{}}
}

// AppendEntry appends a data row holding e's cells.
func (p *PrintTable) AppendEntry(e RosterEntry) {
	p.appendRow(PrintRow{Cells: e.Cells()})
}

// AppendHeader appends a header row whose every cell is its column label.
func (p *PrintTable) AppendHeader() {
	cells := make([]string, len(p.Columns))
	copy(cells, p.Columns)
	p.appendRow(PrintRow{Header: true, Cells: cells})
}

// AppendCells appends a data row read back from a snapshot tab.
func (p *PrintTable) AppendCells(cells []string) {
	p.appendRow(PrintRow{Cells: cells})
}

// appendRow panics when the row width does not match the schema; a
// mismatched row means a bug in the caller, not bad user input.
func (p *PrintTable) appendRow(r PrintRow) {
	if len(r.Cells) != len(p.Columns) {
		panic(fmt.Sprintf("domain: print row has %d cells, schema has %d columns", len(r.Cells), len(p.Columns)))
	}
	p.Rows = append(p.Rows, r)
}

// HeaderCount returns the number of inserted group header rows.
func (p PrintTable) HeaderCount() int {
	n := 0
	for _, r := range p.Rows {
		if r.Header {
			n++
		}
	}
	return n
}

// Values returns the grid written to a snapshot tab: the column labels
// followed by every row.
func (p PrintTable) Values() [][]string {
	out := make([][]string, 0, len(p.Rows)+1)
	out = append(out, p.Columns)
	for _, r := range p.Rows {
		out = append(out, r.Cells)
	}
	return out
}
