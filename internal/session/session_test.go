package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowCache_LoadsOnce(t *testing.T) {
	c := NewRowCache()
	calls := 0
	load := func(context.Context) ([][]string, error) {
		calls++
		return [][]string{{"h"}, {"r"}}, nil
	}

	first, err := c.Get(context.Background(), load)
	require.NoError(t, err)
	second, err := c.Get(context.Background(), load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	_, ok := c.LoadedAt()
	assert.True(t, ok)
}

func TestRowCache_Invalidate_Reloads(t *testing.T) {
	c := NewRowCache()
	calls := 0
	load := func(context.Context) ([][]string, error) {
		calls++
		return [][]string{{"h"}}, nil
	}

	_, err := c.Get(context.Background(), load)
	require.NoError(t, err)
	c.Invalidate()
	_, ok := c.LoadedAt()
	assert.False(t, ok)

	_, err = c.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRowCache_ErrorNotCached(t *testing.T) {
	c := NewRowCache()
	boom := errors.New("sheets unavailable")
	fail := true
	load := func(context.Context) ([][]string, error) {
		if fail {
			return nil, boom
		}
		return [][]string{{"h"}}, nil
	}

	_, err := c.Get(context.Background(), load)
	assert.ErrorIs(t, err, boom)

	fail = false
	rows, err := c.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// ---- Manager ---------------------------------------------------------------

func newTestManager() *Manager {
	return NewManager(time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// do runs h behind m for one request, sending cookie when it is not nil, and
// returns the session cookie of the response.
func do(t *testing.T, m *Manager, h http.HandlerFunc, cookie *http.Cookie) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	m.LoadAndSave(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return cookie
}

func TestRows_KeptAcrossRequestsOfOneSession(t *testing.T) {
	m := newTestManager()
	calls := 0
	load := func(context.Context) ([][]string, error) {
		calls++
		return [][]string{{"h"}, {"r"}}, nil
	}
	var got [][]string
	get := func(w http.ResponseWriter, r *http.Request) {
		rows, err := m.Rows.Get(r.Context(), load)
		require.NoError(t, err)
		got = rows
	}

	cookie := do(t, m, get, nil)
	require.NotNil(t, cookie)
	do(t, m, get, cookie)

	assert.Equal(t, 1, calls)
	assert.Equal(t, [][]string{{"h"}, {"r"}}, got)

	// A second browser has its own snapshot.
	do(t, m, get, nil)
	assert.Equal(t, 2, calls)
}

func TestRows_Invalidate_Reloads(t *testing.T) {
	m := newTestManager()
	calls := 0
	load := func(context.Context) ([][]string, error) {
		calls++
		return [][]string{{"h"}}, nil
	}
	var loaded bool
	get := func(w http.ResponseWriter, r *http.Request) {
		_, err := m.Rows.Get(r.Context(), load)
		require.NoError(t, err)
		_, loaded = m.Rows.LoadedAt(r.Context())
	}
	invalidate := func(w http.ResponseWriter, r *http.Request) {
		m.Rows.Invalidate(r.Context())
		_, loaded = m.Rows.LoadedAt(r.Context())
	}

	cookie := do(t, m, get, nil)
	assert.True(t, loaded)
	cookie = do(t, m, invalidate, cookie)
	assert.False(t, loaded)
	do(t, m, get, cookie)

	assert.Equal(t, 2, calls)
}

func TestRows_ErrorNotStored(t *testing.T) {
	m := newTestManager()
	boom := errors.New("sheets unavailable")
	fail := true
	load := func(context.Context) ([][]string, error) {
		if fail {
			return nil, boom
		}
		return [][]string{{"h"}}, nil
	}
	var (
		rows [][]string
		err  error
	)
	get := func(w http.ResponseWriter, r *http.Request) {
		rows, err = m.Rows.Get(r.Context(), load)
	}

	cookie := do(t, m, get, nil)
	assert.ErrorIs(t, err, boom)

	fail = false
	do(t, m, get, cookie)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestManager_ID_StableWithinSession(t *testing.T) {
	m := newTestManager()
	var ids []string
	id := func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, m.ID(r.Context()))
	}

	cookie := do(t, m, id, nil)
	require.NotNil(t, cookie)
	do(t, m, id, cookie)
	do(t, m, id, nil)

	require.Len(t, ids, 3)
	assert.Equal(t, ids[0], ids[1])
	assert.NotEqual(t, ids[0], ids[2])
	assert.NotEqual(t, cookie.Value, ids[0], "the logged id is not the cookie token")
}

func TestManager_Cookie(t *testing.T) {
	m := newTestManager()

	cookie := do(t, m, func(w http.ResponseWriter, r *http.Request) { m.ID(r.Context()) }, nil)

	require.NotNil(t, cookie)
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.True(t, cookie.Expires.IsZero(), "session cookie")
}
