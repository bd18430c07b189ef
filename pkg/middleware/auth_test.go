package middleware_test

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/ziggoon/tinyDEM/internal/db"
	"github.com/ziggoon/tinyDEM/pkg/middleware"
	"github.com/ziggoon/tinyDEM/pkg/session"
	"github.com/ziggoon/tinyDEM/pkg/user"
)

type guardFixture struct {
	users    *user.SQLRepo
	sessions *session.SQLRepo
	handler  http.Handler
	seen     *middleware.Identity
}

func setupGuard(t *testing.T) *guardFixture {
	conn, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	conn.SetMaxOpenConns(1)
	assert.NoError(t, db.CreateTables(conn))
	t.Cleanup(func() { conn.Close() })

	f := &guardFixture{
		users:    user.NewSQLRepo(conn),
		sessions: session.NewSQLRepo(conn),
		seen:     &middleware.Identity{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.IdentityFrom(r.Context())
		assert.True(t, ok)
		*f.seen = id
		w.WriteHeader(http.StatusOK)
	})
	f.handler = middleware.Auth(f.sessions, f.users, logger)(next)

	return f
}

func (f *guardFixture) request(t *testing.T, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingCookie(t *testing.T) {
	f := setupGuard(t)

	rec := f.request(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUnknownToken(t *testing.T) {
	f := setupGuard(t)

	rec := f.request(t, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidSession(t *testing.T) {
	f := setupGuard(t)

	assert.NoError(t, f.users.Create(&user.User{Username: "bob", PasswordHash: "h", IsAdmin: true}))
	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, f.sessions.Create("bob", token))

	rec := f.request(t, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", f.seen.Username)
	assert.True(t, f.seen.IsAdmin)
}

func TestAuthExpiredSession(t *testing.T) {
	f := setupGuard(t)

	assert.NoError(t, f.users.Create(&user.User{Username: "bob", PasswordHash: "h"}))
	f.sessions.TTL = -time.Minute
	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, f.sessions.Create("bob", token))

	rec := f.request(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSessionForDeletedUser(t *testing.T) {
	f := setupGuard(t)

	// A session bound to a username the store no longer knows must not
	// resolve to an identity.
	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, f.sessions.Create("gone", token))

	rec := f.request(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := middleware.Panic(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
