package middleware

import (
	"net/http"

	"github.com/pkordes/parking-roster/internal/session"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = session.CookieName

// NewSessionHandler returns a middleware that loads the request's session
// through sessions and saves it after the handler runs. Every request ends
// up with a session: a missing, unknown or expired cookie starts a new one
// and the response sets a fresh cookie.
func NewSessionHandler(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessions.ID(r.Context())
			next.ServeHTTP(w, r)
		}))
	}
}
