package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pkordes/parking-roster/internal/domain"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	doneStyle   = cellStyle.Faint(true)
)

// renderRoster renders a live roster. Rows already marked done are dimmed.
func renderRoster(t domain.RosterTable) string {
	rows := make([][]string, len(t.Entries))
	for i, e := range t.Entries {
		rows[i] = e.Cells()
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case t.Entries[row].Done:
				return doneStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// renderPrintTable renders a print layout with its group header rows in bold.
func renderPrintTable(p domain.PrintTable) string {
	rows := make([][]string, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = r.Cells
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(p.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow || p.Rows[row].Header {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
