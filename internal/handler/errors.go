package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/parking-roster/internal/domain"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

// statusFor maps a service error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrSchema):
		return http.StatusBadGateway, "schema_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError writes err as a JSON error response. Unexpected errors are
// logged and answered with a generic message so backend details stay out of
// the response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "session", s.sessions.ID(r.Context()), "error", err)
		writeJSON(w, status, errorBody(code, "internal server error"))
		return
	}
	if status == http.StatusBadGateway {
		s.log.WarnContext(r.Context(), "source sheet rejected", "error", err)
	}
	writeJSON(w, status, errorBody(code, unwrapMessage(err)))
}

// requestError writes a 422 for input rejected before reaching the service
// layer, such as a malformed body or query parameter.
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

// unwrapMessage extracts the human-readable part after the domain sentinel.
// e.g. "service.RosterService.Snapshot: not found" → "not found",
// "validation error: entry 2: keys must be empty or \"X\"" → "entry 2: keys must be empty or \"X\"".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrSchema} {
		text := sentinel.Error()
		i := strings.Index(msg, text)
		if i < 0 {
			continue
		}
		if rest := strings.TrimPrefix(msg[i+len(text):], ": "); rest != "" {
			return rest
		}
		return text
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
