package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

// snapshotTabResponse is one element of GET /api/snapshots.
type snapshotTabResponse struct {
	Title string             `json:"title"`
	Date  openapi_types.Date `json:"date"`
}

// CreateSnapshot handles POST /api/snapshots. It writes the print layout of
// the submitted entries into the tab named after the date.
func (s *Server) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRoster(w, r)
	if !ok {
		return
	}
	snap, err := s.roster.SaveSnapshot(r.Context(), req.Date.Time, req.Entries)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// ListSnapshots handles GET /api/snapshots.
func (s *Server) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	tabs, err := s.roster.Snapshots(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]snapshotTabResponse, len(tabs))
	for i, t := range tabs {
		out[i] = snapshotTabToResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSnapshot handles GET /api/snapshots/{date}. The date may be given as
// DD.MM.YYYY (the tab title) or YYYY-MM-DD.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	date, ok := roster.ParseDate(chi.URLParam(r, "date"))
	if !ok {
		requestError(w, "invalid date: want DD.MM.YYYY or YYYY-MM-DD")
		return
	}
	table, err := s.roster.Snapshot(r.Context(), date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func snapshotTabToResponse(t domain.SnapshotTab) snapshotTabResponse {
	return snapshotTabResponse{Title: t.Title, Date: openapi_types.Date{Time: t.Date}}
}
