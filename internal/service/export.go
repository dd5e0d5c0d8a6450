package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/repo"
	"github.com/pkordes/parking-roster/internal/roster"
)

// ExportFormat selects the file type of an export.
type ExportFormat string

// Supported export formats.
const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportFile is an encoded print table ready to be downloaded.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// Printer is the part of RosterService the exporter needs.
type Printer interface {
	Print(date time.Time, entries []domain.RosterEntry) (domain.PrintTable, error)
}

// ExportService encodes the print layout of an edited roster as a file, for
// printing outside the browser.
type ExportService struct {
	printer Printer
}

// NewExportService constructs an ExportService on top of printer.
func NewExportService(printer Printer) *ExportService {
	return &ExportService{printer: printer}
}

// Export returns the print layout of entries encoded as format.
// Returns domain.ErrValidation for unknown formats or invalid entries.
func (s *ExportService) Export(date time.Time, entries []domain.RosterEntry, format ExportFormat) (ExportFile, error) {
	printable, err := s.printer.Print(date, entries)
	if err != nil {
		return ExportFile{}, err
	}

	name := "smena-" + roster.FormatDate(date)
	switch format {
	case FormatCSV:
		body, err := encodeCSV(printable)
		if err != nil {
			return ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		return ExportFile{Name: name + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}, nil
	case FormatXLSX:
		body, err := encodeXLSX(printable, roster.FormatDate(date))
		if err != nil {
			return ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		return ExportFile{
			Name:        name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	default:
		return ExportFile{}, fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, format)
	}
}

// encodeCSV writes the column row followed by every print row.
func encodeCSV(p domain.PrintTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(p.Values()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeXLSX writes the print table into a single-sheet workbook with the
// column row and group header rows in bold.
func encodeXLSX(p domain.PrintTable, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := repo.WriteSheetRows(f, sheet, p.Values()); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, err
	}
	for i, r := range p.Rows {
		if !r.Header {
			continue
		}
		// +2: one for 1-based rows, one for the column row.
		if err := f.SetRowStyle(sheet, i+2, i+2, bold); err != nil {
			return nil, err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(p.Columns))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 14); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
