package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/parking-roster/internal/middleware"
	"github.com/pkordes/parking-roster/internal/session"
)

func newSessions() *session.Manager {
	return session.NewManager(time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// sessionEcho writes the id of the request's session into the body.
func sessionEcho(sessions *session.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sessions.ID(r.Context())))
	})
}

func TestSessionHandler_NoCookie_StartsSession(t *testing.T) {
	sessions := newSessions()
	h := middleware.NewSessionHandler(sessions)(sessionEcho(sessions))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.NotEqual(t, rec.Body.String(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSessionHandler_KnownCookie_ReusesSession(t *testing.T) {
	sessions := newSessions()
	h := middleware.NewSessionHandler(sessions)(sessionEcho(sessions))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, first.Body.String(), rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, cookie.Value, c.Value, "idle timeout refresh keeps the token")
	}
}

func TestSessionHandler_UnknownCookie_StartsSession(t *testing.T) {
	sessions := newSessions()
	h := middleware.NewSessionHandler(sessions)(sessionEcho(sessions))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "no-such-session"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "no-such-session", cookies[0].Value)
	assert.NotEmpty(t, rec.Body.String())
}
