// Package handler implements the HTTP surface of the parking roster: a JSON
// API under /api and the server-rendered roster page under / and /ui.
// Handlers are methods on Server, split into files by resource, and share
// its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/parking-roster/api"
	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/middleware"
	"github.com/pkordes/parking-roster/internal/service"
	"github.com/pkordes/parking-roster/internal/session"
)

// RosterServicer defines the roster operations the handlers depend on.
// Defining it here, in the consumer package, lets handler tests inject a
// mock without a spreadsheet behind it.
type RosterServicer interface {
	Roster(ctx context.Context, cache service.RowCache, date time.Time) (domain.RosterTable, error)
	Print(date time.Time, entries []domain.RosterEntry) (domain.PrintTable, error)
	SaveSnapshot(ctx context.Context, date time.Time, entries []domain.RosterEntry) (domain.Snapshot, error)
	Snapshots(ctx context.Context) ([]domain.SnapshotTab, error)
	Snapshot(ctx context.Context, date time.Time) (domain.PrintTable, error)
}

// Exporter encodes an edited roster as a downloadable file.
type Exporter interface {
	Export(date time.Time, entries []domain.RosterEntry, format service.ExportFormat) (service.ExportFile, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	roster   RosterServicer
	export   Exporter
	sessions *session.Manager
	log      *slog.Logger
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(roster RosterServicer, export Exporter, sessions *session.Manager, log *slog.Logger) *Server {
	return &Server{
		roster:   roster,
		export:   export,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Routes returns the router serving every endpoint. Cross-cutting middleware
// (request id, logging, CORS, body limit) is applied by the caller; the
// session middleware is applied here because only the roster routes need it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionHandler(s.sessions))

		r.Route("/api", func(r chi.Router) {
			r.Get("/roster", s.GetRoster)
			r.Post("/roster/refresh", s.RefreshRoster)
			r.Post("/roster/print", s.PrintRoster)
			r.Post("/roster/export", s.ExportRoster)
			r.Post("/snapshots", s.CreateSnapshot)
			r.Get("/snapshots", s.ListSnapshots)
			r.Get("/snapshots/{date}", s.GetSnapshot)
		})

		r.Get("/", s.RosterPage)
		r.Post("/ui/save", s.SavePage)
		r.Post("/ui/print", s.PrintPage)
		r.Post("/ui/refresh", s.RefreshPage)
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.OpenAPI)
}

// today returns the current date at midnight UTC, the form ParseDate yields.
func (s *Server) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
