package session

import (
	"errors"
	"time"
)

// CookieName is the carrier of the session token on every request.
const CookieName = "auth"

// TTL is the fixed session lifetime.
const TTL = 10 * time.Minute

var (
	// ErrInvalid covers unknown, malformed or tampered tokens.
	ErrInvalid = errors.New("invalid session")
	// ErrExpired covers known tokens whose deadline has passed.
	ErrExpired = errors.New("session expired")
)

type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type Repository interface {
	Create(username, token string) error
	Validate(token string) (string, error)
	DeleteExpired() error
}
