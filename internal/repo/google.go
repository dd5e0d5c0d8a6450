package repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pkordes/parking-roster/internal/domain"
)

// googleScopes are the OAuth scopes requested for the service account.
var googleScopes = []string{
	sheets.SpreadsheetsScope,
	sheets.DriveScope,
}

// googleSheetRepo is the Google Sheets implementation of SheetRepo.
type googleSheetRepo struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogleSheetRepo builds a SheetRepo for spreadsheetID authenticated with
// the service account key in credentialsJSON.
func NewGoogleSheetRepo(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (SheetRepo, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, googleScopes...)
	if err != nil {
		return nil, fmt.Errorf("repo.NewGoogleSheetRepo: credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("repo.NewGoogleSheetRepo: %w", err)
	}
	return NewGoogleSheetRepoFromService(svc, spreadsheetID), nil
}

// NewGoogleSheetRepoFromService wraps an already configured Sheets client.
// Tests use it to point the client at an httptest server.
func NewGoogleSheetRepoFromService(svc *sheets.Service, spreadsheetID string) SheetRepo {
	return &googleSheetRepo{svc: svc, spreadsheetID: spreadsheetID}
}

// ReadAll reads the formatted values of the whole tab.
func (r *googleSheetRepo) ReadAll(ctx context.Context, tab string) ([][]string, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, a1Range(tab)).Context(ctx).Do()
	if err != nil {
		if isRangeNotFound(err) {
			return nil, fmt.Errorf("repo.GoogleSheetRepo.ReadAll: tab %q: %w", tab, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.GoogleSheetRepo.ReadAll: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListTabs returns the sheet properties of every tab.
func (r *googleSheetRepo) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	ss, err := r.svc.Spreadsheets.Get(r.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("repo.GoogleSheetRepo.ListTabs: %w", err)
	}
	tabs := make([]domain.Tab, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties == nil {
			continue
		}
		tabs = append(tabs, domain.Tab{ID: s.Properties.SheetId, Title: s.Properties.Title})
	}
	return tabs, nil
}

// EnsureTab clears the tab if it exists, otherwise adds it with room for
// rows plus spareRows rows.
func (r *googleSheetRepo) EnsureTab(ctx context.Context, title string, rows int) (domain.Tab, error) {
	tabs, err := r.ListTabs(ctx)
	if err != nil {
		return domain.Tab{}, fmt.Errorf("repo.GoogleSheetRepo.EnsureTab: %w", err)
	}
	for _, t := range tabs {
		if t.Title == title {
			if err := r.Clear(ctx, t); err != nil {
				return domain.Tab{}, fmt.Errorf("repo.GoogleSheetRepo.EnsureTab: %w", err)
			}
			return t, nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows + spareRows),
						ColumnCount: gridColumns,
					},
				},
			},
		}},
	}
	resp, err := r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return domain.Tab{}, fmt.Errorf("repo.GoogleSheetRepo.EnsureTab: add sheet: %w", err)
	}
	tab := domain.Tab{Title: title}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		tab.ID = resp.Replies[0].AddSheet.Properties.SheetId
	}
	return tab, nil
}

// Clear removes every value from the tab, keeping formatting.
func (r *googleSheetRepo) Clear(ctx context.Context, tab domain.Tab) error {
	_, err := r.svc.Spreadsheets.Values.Clear(r.spreadsheetID, a1Range(tab.Title), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("repo.GoogleSheetRepo.Clear: %w", err)
	}
	return nil
}

// Write stores values verbatim (RAW input, no formula or date parsing).
func (r *googleSheetRepo) Write(ctx context.Context, tab domain.Tab, values [][]string) error {
	grid := make([][]any, len(values))
	for i, row := range values {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		grid[i] = cells
	}
	vr := &sheets.ValueRange{Values: grid}
	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, a1Range(tab.Title)+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("repo.GoogleSheetRepo.Write: %w", err)
	}
	return nil
}

// a1Range quotes a tab title for use in A1 notation.
func a1Range(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// isRangeNotFound reports whether err is the API's answer to a range that
// names a tab which does not exist.
func isRangeNotFound(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "Unable to parse range")
}
