package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

// workbookSheetRepo is a SheetRepo backed by a local .xlsx workbook.
// Every call opens the file, applies its change, saves and closes, so the
// workbook can be inspected or edited in a spreadsheet program between
// requests.
type workbookSheetRepo struct {
	mu   sync.Mutex
	path string
}

// NewWorkbookSheetRepo returns a SheetRepo for the workbook at path.
// The file is created on first write if it does not exist.
func NewWorkbookSheetRepo(path string) SheetRepo {
	return &workbookSheetRepo{path: path}
}

// ReadAll returns the tab's rows as displayed, except that date cells come
// back as DD.MM.YYYY whatever their number format. excelize omits trailing
// empty cells, which is fine because the roster pads rows before reading
// fields.
func (r *workbookSheetRepo) ReadAll(ctx context.Context, tab string) ([][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("repo.WorkbookSheetRepo.ReadAll: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(tab); idx == -1 {
		return nil, fmt.Errorf("repo.WorkbookSheetRepo.ReadAll: tab %q: %w", tab, domain.ErrNotFound)
	}
	rows, err := f.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("repo.WorkbookSheetRepo.ReadAll: %w", err)
	}
	if err := formatDateCells(f, tab, rows); err != nil {
		return nil, fmt.Errorf("repo.WorkbookSheetRepo.ReadAll: %w", err)
	}
	return rows, nil
}

// ListTabs returns the workbook's sheets in order.
func (r *workbookSheetRepo) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("repo.WorkbookSheetRepo.ListTabs: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	tabs := make([]domain.Tab, 0, len(names))
	for i, name := range names {
		tabs = append(tabs, domain.Tab{ID: int64(i), Title: name})
	}
	return tabs, nil
}

// EnsureTab adds the sheet if missing or clears it if present.
func (r *workbookSheetRepo) EnsureTab(ctx context.Context, title string, rows int) (domain.Tab, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return domain.Tab{}, fmt.Errorf("repo.WorkbookSheetRepo.EnsureTab: %w", err)
	}
	defer f.Close()

	idx, _ := f.GetSheetIndex(title)
	if idx == -1 {
		if idx, err = f.NewSheet(title); err != nil {
			return domain.Tab{}, fmt.Errorf("repo.WorkbookSheetRepo.EnsureTab: new sheet: %w", err)
		}
	} else if err := clearSheet(f, title); err != nil {
		return domain.Tab{}, fmt.Errorf("repo.WorkbookSheetRepo.EnsureTab: %w", err)
	}

	if err := f.SaveAs(r.path); err != nil {
		return domain.Tab{}, fmt.Errorf("repo.WorkbookSheetRepo.EnsureTab: save: %w", err)
	}
	return domain.Tab{ID: int64(idx), Title: title}, nil
}

// Clear removes every row of the tab.
func (r *workbookSheetRepo) Clear(ctx context.Context, tab domain.Tab) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Clear: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(tab.Title); idx == -1 {
		return fmt.Errorf("repo.WorkbookSheetRepo.Clear: tab %q: %w", tab.Title, domain.ErrNotFound)
	}
	if err := clearSheet(f, tab.Title); err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Clear: %w", err)
	}
	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Clear: save: %w", err)
	}
	return nil
}

// Write replaces the tab's content with values.
func (r *workbookSheetRepo) Write(ctx context.Context, tab domain.Tab, values [][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Write: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(tab.Title); idx == -1 {
		return fmt.Errorf("repo.WorkbookSheetRepo.Write: tab %q: %w", tab.Title, domain.ErrNotFound)
	}
	if err := clearSheet(f, tab.Title); err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Write: %w", err)
	}
	if err := WriteSheetRows(f, tab.Title, values); err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Write: %w", err)
	}
	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("repo.WorkbookSheetRepo.Write: save: %w", err)
	}
	return nil
}

// open opens the workbook, or returns a fresh one if the file does not
// exist yet.
func (r *workbookSheetRepo) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(r.path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
}

// WriteSheetRows writes values into sheet starting at A1, one row per slice.
// It is shared by the workbook backend and the XLSX export.
func WriteSheetRows(f *excelize.File, sheet string, values [][]string) error {
	for i, row := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

// builtinDateFormats are the built-in number format ids that show a calendar
// date. Time-only formats (18-21, 32-33, 45-47) are left out so durations
// and times of day keep their display text.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// formatDateCells rewrites, in place, cells holding an Excel date serial to
// DD.MM.YYYY. GetRows yields display text such as "Jun-25" or "6/1/25" for
// those, which depends on the cell's number format and carries no year or
// day in a parseable form.
func formatDateCells(f *excelize.File, sheet string, rows [][]string) error {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("raw rows: %w", err)
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	for i := 0; i < len(rows) && i < len(raw); i++ {
		for j := 0; j < len(rows[i]) && j < len(raw[i]); j++ {
			if raw[i][j] == rows[i][j] {
				continue
			}
			serial, err := strconv.ParseFloat(raw[i][j], 64)
			if err != nil || serial < 1 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			ok, err := hasDateFormat(f, sheet, cell)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			rows[i][j] = roster.FormatDate(t)
		}
	}
	return nil
}

func hasDateFormat(f *excelize.File, sheet, cell string) (bool, error) {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, fmt.Errorf("style of %s: %w", cell, err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		return false, fmt.Errorf("style of %s: %w", cell, err)
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt), nil
	}
	return builtinDateFormats[style.NumFmt], nil
}

// isDateFormatCode reports whether a custom number format code shows a day
// or a year. Quoted literals, escaped characters and bracketed sections such
// as colors or locales are ignored.
func isDateFormatCode(code string) bool {
	var (
		quoted    bool
		bracketed bool
		escaped   bool
	)
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracketed:
			bracketed = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracketed = true
		case r == 'd' || r == 'y':
			return true
		}
	}
	return false
}

// clearSheet deletes rows bottom-up so indexes stay valid while removing.
func clearSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("clear %s: %w", sheet, err)
	}
	for i := len(rows); i >= 1; i-- {
		if err := f.RemoveRow(sheet, i); err != nil {
			return fmt.Errorf("clear %s: row %d: %w", sheet, i, err)
		}
	}
	return nil
}
