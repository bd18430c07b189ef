package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SQLRepo struct {
	DB *sql.DB
	// TTL is the session lifetime applied at creation.
	TTL time.Duration
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db, TTL: TTL}
}

func (r *SQLRepo) Create(username, token string) error {
	now := time.Now().UTC()
	_, err := r.DB.Exec(`
		INSERT INTO sessions (id, username, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, token, username, now, now.Add(r.TTL))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Validate resolves token to its bound username. The expiry check runs
// against the server clock in Go so that unknown and expired tokens stay
// distinguishable.
func (r *SQLRepo) Validate(token string) (string, error) {
	var username string
	var expiresAt time.Time
	err := r.DB.QueryRow(`
		SELECT username, expires_at FROM sessions WHERE id = ?
	`, token).Scan(&username, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalid
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if !time.Now().UTC().Before(expiresAt) {
		return "", ErrExpired
	}
	return username, nil
}

// DeleteExpired sweeps rows past their deadline. Expiry itself is
// enforced by Validate; this is storage hygiene, not revocation.
func (r *SQLRepo) DeleteExpired() error {
	_, err := r.DB.Exec(`
		DELETE FROM sessions WHERE expires_at <= ?
	`, time.Now().UTC())
	return err
}
