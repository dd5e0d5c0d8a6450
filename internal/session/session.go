// Package session keeps per-browser state between requests: each session
// owns its own snapshot of the source rows, so one user's reload never
// changes what another user is editing.
package session

import (
	"context"
	"encoding/gob"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "roster_session"

// Session data keys.
const (
	keyID       = "id"
	keyRows     = "rows"
	keyLoadedAt = "rows_loaded_at"
)

func init() {
	// Session values are gob-encoded when committed to the store.
	gob.Register([][]string{})
	gob.Register(time.Time{})
}

// Manager loads and saves session data around each request and exposes the
// typed values handlers need. Sessions live in memory and expire after ttl
// of inactivity.
type Manager struct {
	sm *scs.SessionManager

	// Rows is the source-row snapshot of the request's session.
	Rows *Rows
}

// NewManager returns a Manager whose sessions expire after ttl without a
// request. Failures to commit session data are logged and answered with 500.
func NewManager(ttl time.Duration, log *slog.Logger) *Manager {
	sm := scs.New()
	sm.IdleTimeout = ttl
	if ttl > sm.Lifetime {
		sm.Lifetime = ttl
	}
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Persist = false
	sm.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "session commit failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
	return &Manager{sm: sm, Rows: &Rows{sm: sm}}
}

// LoadAndSave loads the request's session into its context and commits it,
// setting the cookie, before the response is written.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// ID returns the identifier of the request's session, assigning one on first
// use. Unlike the cookie token it is safe to log.
func (m *Manager) ID(ctx context.Context) string {
	if id := m.sm.GetString(ctx, keyID); id != "" {
		return id
	}
	id := uuid.NewString()
	m.sm.Put(ctx, keyID, id)
	return id
}

// Rows is a RowCache-like view over the rows kept in session data. Its
// methods need a context that went through Manager.LoadAndSave.
type Rows struct {
	sm *scs.SessionManager
}

// Get returns the session's rows, calling load when the session has none.
// Failed loads are not stored, so the next Get retries.
func (c *Rows) Get(ctx context.Context, load LoadFunc) ([][]string, error) {
	if rows, ok := c.sm.Get(ctx, keyRows).([][]string); ok {
		return rows, nil
	}
	rows, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	c.sm.Put(ctx, keyRows, rows)
	c.sm.Put(ctx, keyLoadedAt, time.Now())
	return rows, nil
}

// Invalidate drops the session's rows; the next Get reloads.
func (c *Rows) Invalidate(ctx context.Context) {
	c.sm.Remove(ctx, keyRows)
	c.sm.Remove(ctx, keyLoadedAt)
}

// LoadedAt reports when the session's rows were loaded, and false when the
// session has none.
func (c *Rows) LoadedAt(ctx context.Context) (time.Time, bool) {
	if !c.sm.Exists(ctx, keyRows) {
		return time.Time{}, false
	}
	return c.sm.GetTime(ctx, keyLoadedAt), true
}
