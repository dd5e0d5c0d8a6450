package roster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/parking-roster/internal/domain"
)

// Field names a logical source column.
type Field string

// Source fields read by the extractor.
const (
	FieldOutboundFlight Field = "outbound_flight"
	FieldOutboundDate   Field = "outbound_date"
	FieldOutboundTime   Field = "outbound_time"
	FieldReturnDate     Field = "return_date"
	FieldReturnTime     Field = "return_time"
	FieldReturnFlight   Field = "return_flight"
	FieldName           Field = "name"
	FieldPersons        Field = "persons"
	FieldPlate          Field = "plate"
	FieldNotePrimary    Field = "note_primary"
	FieldNoteSecondary  Field = "note_secondary"
)

// MinWidth is the width every raw row is padded to before field access.
const MinWidth = 17

// defaultColumns is the layout of the "Data" sheet, by column letter.
var defaultColumns = map[Field]string{
	FieldOutboundFlight: "D",
	FieldOutboundDate:   "E",
	FieldOutboundTime:   "F",
	FieldReturnDate:     "G",
	FieldReturnTime:     "H",
	FieldReturnFlight:   "I",
	FieldName:           "K",
	FieldPersons:        "L",
	FieldPlate:          "N",
	FieldNotePrimary:    "O",
	FieldNoteSecondary:  "Q",
}

// Layout maps each Field to a 0-based column index of the source sheet.
// Labels optionally pins the header text expected above a field; Validate
// compares them against the header row so a reshuffled sheet is caught at
// load time instead of being silently misread.
type Layout struct {
	Index  map[Field]int
	Labels map[Field]string
	Width  int
}

// DefaultLayout returns the layout of the current source sheet.
func DefaultLayout() Layout {
	l := Layout{Index: make(map[Field]int, len(defaultColumns)), Labels: map[Field]string{}}
	for f, col := range defaultColumns {
		n, _ := excelize.ColumnNameToNumber(col)
		l.Index[f] = n - 1
	}
	l.Width = l.width()
	return l
}

// ParseLayout applies comma-separated overrides on top of DefaultLayout.
// Each override is field=COLUMN or field=COLUMN:Header label, for example
// "name=K:Jméno,plate=N". An empty string yields DefaultLayout.
func ParseLayout(overrides string) (Layout, error) {
	l := DefaultLayout()
	for _, part := range strings.Split(overrides, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Layout{}, fmt.Errorf("%w: column override %q: want field=COLUMN", domain.ErrValidation, part)
		}
		f := Field(strings.TrimSpace(key))
		if _, known := defaultColumns[f]; !known {
			return Layout{}, fmt.Errorf("%w: unknown field %q", domain.ErrValidation, f)
		}
		col, label, hasLabel := strings.Cut(value, ":")
		n, err := excelize.ColumnNameToNumber(strings.TrimSpace(col))
		if err != nil {
			return Layout{}, fmt.Errorf("%w: field %s: %v", domain.ErrValidation, f, err)
		}
		l.Index[f] = n - 1
		if hasLabel {
			l.Labels[f] = strings.TrimSpace(label)
		}
	}
	if err := l.checkDistinct(); err != nil {
		return Layout{}, err
	}
	l.Width = l.width()
	return l, nil
}

// Validate checks the source header row against the expected labels.
// Without labels there is nothing to check and any header is accepted.
func (l Layout) Validate(header []string) error {
	if len(l.Labels) == 0 {
		return nil
	}
	if header == nil {
		return fmt.Errorf("%w: header row missing", domain.ErrSchema)
	}
	var problems []string
	for _, f := range l.sortedFields() {
		want, ok := l.Labels[f]
		if !ok {
			continue
		}
		idx := l.Index[f]
		got := ""
		if idx < len(header) {
			got = strings.TrimSpace(header[idx])
		}
		if !strings.EqualFold(got, want) {
			col, _ := excelize.ColumnNumberToName(idx + 1)
			problems = append(problems, fmt.Sprintf("%s (column %s): want %q, got %q", f, col, want, got))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrSchema, strings.Join(problems, "; "))
	}
	return nil
}

// cell returns the value of field f in a row already padded to l.Width.
func (l Layout) cell(row []string, f Field) string {
	return row[l.Index[f]]
}

func (l Layout) width() int {
	w := MinWidth
	for _, idx := range l.Index {
		if idx+1 > w {
			w = idx + 1
		}
	}
	return w
}

func (l Layout) checkDistinct() error {
	seen := make(map[int]Field, len(l.Index))
	for _, f := range l.sortedFields() {
		idx := l.Index[f]
		if other, dup := seen[idx]; dup {
			col, _ := excelize.ColumnNumberToName(idx + 1)
			return fmt.Errorf("%w: fields %s and %s both map to column %s", domain.ErrValidation, other, f, col)
		}
		seen[idx] = f
	}
	return nil
}

func (l Layout) sortedFields() []Field {
	fields := make([]Field, 0, len(l.Index))
	for f := range l.Index {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}
