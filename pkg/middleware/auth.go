package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ziggoon/tinyDEM/pkg/session"
	"github.com/ziggoon/tinyDEM/pkg/user"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the resolved result of a successful session check.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityFrom returns the identity the Auth middleware resolved for
// this request. Protected handlers never run without one.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok
}

// Auth gates every protected route: it reads the session cookie,
// validates the token against the session store, and re-fetches the
// user so handlers see the current admin flag. Anything short of a
// fully resolved identity is rejected before the handler runs.
func Auth(sessions session.Repository, users user.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			username, err := sessions.Validate(cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrInvalid) || errors.Is(err, session.ErrExpired) {
					logger.Debug("session rejected", "path", r.URL.Path, "reason", err.Error())
					unauthorized(w)
					return
				}
				logger.Error("session lookup", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			u, err := users.FindByUsername(username)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					unauthorized(w)
					return
				}
				logger.Error("user lookup", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, Identity{
				Username: u.Username,
				IsAdmin:  u.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, "authorization required", http.StatusUnauthorized)
}
