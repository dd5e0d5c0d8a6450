// Package service contains the business logic of the parking roster.
// Services validate input, enforce the roster rules, and orchestrate
// SheetRepo calls. No spreadsheet plumbing lives here: services depend on
// the repo interface, not on a backend.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/repo"
	"github.com/pkordes/parking-roster/internal/roster"
	"github.com/pkordes/parking-roster/internal/session"
)

// RowCache is the per-session snapshot of the source rows.
// *session.RowCache and *session.Rows satisfy it.
type RowCache interface {
	Get(ctx context.Context, load session.LoadFunc) ([][]string, error)
}

// RosterService builds rosters from the source tab and saves edited rosters
// into date-named snapshot tabs.
type RosterService struct {
	sheets    repo.SheetRepo
	sourceTab string
	layout    roster.Layout
	log       *slog.Logger
	now       func() time.Time
}

// NewRosterService constructs a RosterService reading sourceTab with layout.
func NewRosterService(sheets repo.SheetRepo, sourceTab string, layout roster.Layout, log *slog.Logger) *RosterService {
	return &RosterService{
		sheets:    sheets,
		sourceTab: sourceTab,
		layout:    layout,
		log:       log,
		now:       time.Now,
	}
}

// Roster returns the roster for date built from the cached source rows.
// The first call on an empty cache reads the source tab and validates its
// header against the layout.
// Returns domain.ErrSchema if the header does not match the layout and
// domain.ErrNotFound if the source tab is missing.
func (s *RosterService) Roster(ctx context.Context, cache RowCache, date time.Time) (domain.RosterTable, error) {
	rows, err := cache.Get(ctx, s.loadSource)
	if err != nil {
		return domain.RosterTable{}, fmt.Errorf("service.RosterService.Roster: %w", err)
	}
	return roster.Build(rows, date, s.layout), nil
}

// loadSource is the cache's LoadFunc.
func (s *RosterService) loadSource(ctx context.Context) ([][]string, error) {
	rows, err := s.sheets.ReadAll(ctx, s.sourceTab)
	if err != nil {
		return nil, err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	if err := s.layout.Validate(header); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "source rows loaded", "tab", s.sourceTab, "rows", len(rows))
	return rows, nil
}

// Print validates edited entries and returns their print layout.
// Returns domain.ErrValidation if an entry breaks the roster rules.
func (s *RosterService) Print(date time.Time, entries []domain.RosterEntry) (domain.PrintTable, error) {
	if err := validateEntries(date, entries); err != nil {
		return domain.PrintTable{}, err
	}
	return roster.BuildPrintTable(tableOf(date, entries)), nil
}

// SaveSnapshot writes the print layout of the edited entries into the tab
// named after date, creating the tab or clearing the existing one first.
// The write either replaces the whole tab or fails.
// Returns domain.ErrValidation if an entry breaks the roster rules.
func (s *RosterService) SaveSnapshot(ctx context.Context, date time.Time, entries []domain.RosterEntry) (domain.Snapshot, error) {
	if err := validateEntries(date, entries); err != nil {
		return domain.Snapshot{}, err
	}
	printable := roster.BuildPrintTable(tableOf(date, entries))
	title := roster.FormatDate(date)

	tab, err := s.sheets.EnsureTab(ctx, title, len(printable.Rows))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.RosterService.SaveSnapshot: %w", err)
	}
	if err := s.sheets.Write(ctx, tab, printable.Values()); err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.RosterService.SaveSnapshot: %w", err)
	}

	snap := domain.Snapshot{
		Tab:     tab.Title,
		Rows:    len(entries),
		Headers: printable.HeaderCount(),
		SavedAt: s.now().UTC(),
	}
	s.log.InfoContext(ctx, "snapshot saved", "tab", snap.Tab, "rows", snap.Rows, "headers", snap.Headers)
	return snap, nil
}

// Snapshots lists the tabs whose titles are roster dates, newest first.
func (s *RosterService) Snapshots(ctx context.Context) ([]domain.SnapshotTab, error) {
	tabs, err := s.sheets.ListTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.Snapshots: %w", err)
	}
	out := []domain.SnapshotTab{}
	for _, t := range tabs {
		// Only exact DD.MM.YYYY titles are snapshots; "1.6.2025" is not.
		d, ok := roster.ParseDate(t.Title)
		if !ok || roster.FormatDate(d) != t.Title {
			continue
		}
		out = append(out, domain.SnapshotTab{Title: t.Title, Date: d})
	}
	slices.SortFunc(out, func(a, b domain.SnapshotTab) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

// Snapshot reads a saved snapshot tab back as a print table.
// Returns domain.ErrNotFound if no snapshot exists for date and
// domain.ErrSchema if the tab does not start with the roster columns.
func (s *RosterService) Snapshot(ctx context.Context, date time.Time) (domain.PrintTable, error) {
	title := roster.FormatDate(date)
	rows, err := s.sheets.ReadAll(ctx, title)
	if err != nil {
		return domain.PrintTable{}, fmt.Errorf("service.RosterService.Snapshot: %w", err)
	}

	out := domain.NewPrintTable()
	if len(rows) == 0 {
		return out, nil
	}
	if !slices.Equal(fitRow(rows[0], len(out.Columns)), out.Columns) {
		return domain.PrintTable{}, fmt.Errorf("service.RosterService.Snapshot: tab %q: %w: unexpected header row", title, domain.ErrSchema)
	}
	for _, row := range rows[1:] {
		cells := fitRow(row, len(out.Columns))
		if slices.Equal(cells, out.Columns) {
			out.AppendHeader()
			continue
		}
		out.AppendCells(cells)
	}
	return out, nil
}

// validateEntries enforces the rules the grid editor is supposed to
// guarantee:
//   - Keys is empty or domain.KeysHeld.
//   - Date is the selected date; entries are never re-dated.
func validateEntries(date time.Time, entries []domain.RosterEntry) error {
	want := roster.FormatDate(date)
	for i, e := range entries {
		if e.Keys != "" && e.Keys != domain.KeysHeld {
			return fmt.Errorf("%w: entry %d: keys must be empty or %q", domain.ErrValidation, i+1, domain.KeysHeld)
		}
		if e.Date != want {
			return fmt.Errorf("%w: entry %d: date %q does not match selected date %s", domain.ErrValidation, i+1, e.Date, want)
		}
	}
	return nil
}

func tableOf(date time.Time, entries []domain.RosterEntry) domain.RosterTable {
	if entries == nil {
		entries = []domain.RosterEntry{}
	}
	return domain.RosterTable{Date: date, Entries: entries}
}

// fitRow pads or truncates row to width. Spreadsheets drop trailing empty
// cells, so a saved row with an empty Směna comes back shorter.
func fitRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
