package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/handler"
	"github.com/pkordes/parking-roster/internal/service"
	"github.com/pkordes/parking-roster/internal/session"
)

// mockRosterServicer is a test double for handler.RosterServicer.
// Set only the method fields your test needs.
type mockRosterServicer struct {
	roster       func(ctx context.Context, cache service.RowCache, date time.Time) (domain.RosterTable, error)
	print        func(date time.Time, entries []domain.RosterEntry) (domain.PrintTable, error)
	saveSnapshot func(ctx context.Context, date time.Time, entries []domain.RosterEntry) (domain.Snapshot, error)
	snapshots    func(ctx context.Context) ([]domain.SnapshotTab, error)
	snapshot     func(ctx context.Context, date time.Time) (domain.PrintTable, error)
}

func (m *mockRosterServicer) Roster(ctx context.Context, cache service.RowCache, date time.Time) (domain.RosterTable, error) {
	return m.roster(ctx, cache, date)
}
func (m *mockRosterServicer) Print(date time.Time, entries []domain.RosterEntry) (domain.PrintTable, error) {
	return m.print(date, entries)
}
func (m *mockRosterServicer) SaveSnapshot(ctx context.Context, date time.Time, entries []domain.RosterEntry) (domain.Snapshot, error) {
	return m.saveSnapshot(ctx, date, entries)
}
func (m *mockRosterServicer) Snapshots(ctx context.Context) ([]domain.SnapshotTab, error) {
	return m.snapshots(ctx)
}
func (m *mockRosterServicer) Snapshot(ctx context.Context, date time.Time) (domain.PrintTable, error) {
	return m.snapshot(ctx, date)
}

// mockExporter is a test double for handler.Exporter.
type mockExporter struct {
	export func(date time.Time, entries []domain.RosterEntry, format service.ExportFormat) (service.ExportFile, error)
}

func (m *mockExporter) Export(date time.Time, entries []domain.RosterEntry, format service.ExportFormat) (service.ExportFile, error) {
	return m.export(date, entries, format)
}

// compile-time checks: the mocks and the real services satisfy the handler interfaces.
var (
	_ handler.RosterServicer = (*mockRosterServicer)(nil)
	_ handler.Exporter       = (*mockExporter)(nil)
	_ handler.RosterServicer = (*service.RosterService)(nil)
	_ handler.Exporter       = (*service.ExportService)(nil)
)

// ---- helpers ---------------------------------------------------------------

var june1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// newHTTPHandler wires a Server with the given mocks the way the serve
// command does, minus the cross-cutting middleware.
func newHTTPHandler(svc handler.RosterServicer, exp handler.Exporter) http.Handler {
	if exp == nil {
		exp = &mockExporter{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, exp, session.NewManager(time.Hour, logger), logger).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func rosterBody(t *testing.T, entries ...domain.RosterEntry) *bytes.Buffer {
	t.Helper()
	if entries == nil {
		entries = []domain.RosterEntry{}
	}
	return jsonBody(t, map[string]any{"date": "2025-06-01", "entries": entries})
}

func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// ---- GET /healthz ----------------------------------------------------------

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := serve(newHTTPHandler(&mockRosterServicer{}, nil), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	// Health checks do not start sessions.
	assert.Empty(t, rec.Result().Cookies())
}

func TestGetOpenAPI_servesDocument(t *testing.T) {
	rec := serve(newHTTPHandler(&mockRosterServicer{}, nil), http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/api/snapshots/{date}")
}
