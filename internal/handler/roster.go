package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/parking-roster/internal/domain"
	"github.com/pkordes/parking-roster/internal/roster"
)

// emptyRosterMessage is shown when the selected date has no entries. It is
// information, not an error.
const emptyRosterMessage = "Pro zvolené datum nejsou ve zdrojovém listu žádné záznamy."

// rosterResponse is the body of GET /api/roster.
type rosterResponse struct {
	Date    openapi_types.Date   `json:"date"`
	Label   string               `json:"label"`
	Columns []string             `json:"columns"`
	Entries []domain.RosterEntry `json:"entries"`
	Message string               `json:"message,omitempty"`
}

// rosterRequest is the body of every endpoint that receives an edited roster.
type rosterRequest struct {
	Date    openapi_types.Date   `json:"date"`
	Entries []domain.RosterEntry `json:"entries"`
}

// GetRoster handles GET /api/roster?date=YYYY-MM-DD.
// A missing date selects today.
func (s *Server) GetRoster(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	table, err := s.roster.Roster(r.Context(), s.sessions.Rows, date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := rosterResponse{
		Date:    openapi_types.Date{Time: date},
		Label:   roster.FormatDate(date),
		Columns: table.Columns(),
		Entries: table.Entries,
	}
	if table.Empty() {
		resp.Message = emptyRosterMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

// RefreshRoster handles POST /api/roster/refresh. It drops the session's
// cached source rows so the next roster read fetches them again.
func (s *Server) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	s.sessions.Rows.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// PrintRoster handles POST /api/roster/print and returns the print layout of
// the submitted entries.
func (s *Server) PrintRoster(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRoster(w, r)
	if !ok {
		return
	}
	table, err := s.roster.Print(req.Date.Time, req.Entries)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// dateParam binds the optional date query parameter, defaulting to today.
func (s *Server) dateParam(r *http.Request) (time.Time, error) {
	var date *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "date", r.URL.Query(), &date); err != nil {
		return time.Time{}, fmt.Errorf("invalid date parameter: want YYYY-MM-DD")
	}
	if date == nil {
		return s.today(), nil
	}
	return date.Time, nil
}

// decodeRoster reads a rosterRequest body, writing the error response itself
// when the body is unusable.
func decodeRoster(w http.ResponseWriter, r *http.Request) (rosterRequest, bool) {
	var req rosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("too_large", "request body too large"))
			return rosterRequest{}, false
		}
		requestError(w, "invalid request body")
		return rosterRequest{}, false
	}
	if req.Date.Time.IsZero() {
		requestError(w, "date is required")
		return rosterRequest{}, false
	}
	return req, true
}
