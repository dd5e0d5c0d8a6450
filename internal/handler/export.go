package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/parking-roster/internal/service"
)

// ExportRoster handles POST /api/roster/export?format=csv|xlsx.
// It returns the print layout of the submitted entries as a file download.
// The default format is csv.
func (s *Server) ExportRoster(w http.ResponseWriter, r *http.Request) {
	format := string(service.FormatCSV)
	var param *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &param); err != nil {
		requestError(w, "invalid format parameter")
		return
	}
	if param != nil {
		format = *param
	}

	req, ok := decodeRoster(w, r)
	if !ok {
		return
	}
	file, err := s.export.Export(req.Date.Time, req.Entries, service.ExportFormat(format))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
