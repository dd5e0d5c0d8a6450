package handler

import (
	"errors"
	"fmt"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/pkordes/parking-roster/internal/roster"
)

// RosterPage handles GET /?date=YYYY-MM-DD and renders the roster grid.
func (s *Server) RosterPage(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, rosterPage(pageData{Date: s.today(), Error: err.Error()}))
		return
	}

	data := pageData{Date: date}
	table, err := s.roster.Roster(r.Context(), s.sessions.Rows, date)
	if err != nil {
		data.Error = s.pageError(r, err)
		status, _ := statusFor(err)
		s.render(w, r, status, rosterPage(data))
		return
	}
	data.Entries = table.Entries
	if table.Empty() {
		data.Info = emptyRosterMessage
	}
	s.render(w, r, http.StatusOK, rosterPage(data))
}

// SavePage handles POST /ui/save. The edited grid is saved as a snapshot and
// shown again as submitted.
func (s *Server) SavePage(w http.ResponseWriter, r *http.Request) {
	dateValue, entries, err := parseGridForm(r)
	if err != nil {
		s.formError(w, r, err)
		return
	}
	date, _ := roster.ParseDate(dateValue)

	data := pageData{Date: date, Entries: entries}
	snap, err := s.roster.SaveSnapshot(r.Context(), date, entries)
	if err != nil {
		data.Error = s.pageError(r, err)
		status, _ := statusFor(err)
		s.render(w, r, status, rosterPage(data))
		return
	}
	data.Notice = fmt.Sprintf("Směna byla uložena do listu '%s'.", snap.Tab)
	s.render(w, r, http.StatusOK, rosterPage(data))
}

// PrintPage handles POST /ui/print and renders the grouped print layout of
// the edited grid.
func (s *Server) PrintPage(w http.ResponseWriter, r *http.Request) {
	dateValue, entries, err := parseGridForm(r)
	if err != nil {
		s.formError(w, r, err)
		return
	}
	date, _ := roster.ParseDate(dateValue)

	table, err := s.roster.Print(date, entries)
	if err != nil {
		status, _ := statusFor(err)
		s.render(w, r, status, rosterPage(pageData{Date: date, Entries: entries, Error: s.pageError(r, err)}))
		return
	}
	s.render(w, r, http.StatusOK, printPage(date, table))
}

// RefreshPage handles POST /ui/refresh: it drops the session's cached source
// rows and redirects back to the roster of the posted date.
func (s *Server) RefreshPage(w http.ResponseWriter, r *http.Request) {
	s.sessions.Rows.Invalidate(r.Context())

	target := "/"
	if err := r.ParseForm(); err == nil {
		if date, ok := roster.ParseDate(r.PostForm.Get(formDate)); ok {
			target = "/?date=" + date.Format(isoDate)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// formError renders the empty roster page for a grid form that could not be
// read: 413 when the body exceeded the size limit, 422 otherwise.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusUnprocessableEntity, unwrapMessage(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status, msg = http.StatusRequestEntityTooLarge, "Formulář je příliš velký."
	}
	s.render(w, r, status, rosterPage(pageData{Date: s.today(), Error: msg}))
}

// pageError returns the message shown on the page for err, logging
// unexpected errors the same way the JSON API does.
func (s *Server) pageError(r *http.Request, err error) string {
	status, _ := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "session", s.sessions.ID(r.Context()), "error", err)
		return "Nastala neočekávaná chyba. Zkuste to prosím znovu."
	}
	return unwrapMessage(err)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		s.log.ErrorContext(r.Context(), "render page", "path", r.URL.Path, "error", err)
	}
}
