package session_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/ziggoon/tinyDEM/internal/db"
	"github.com/ziggoon/tinyDEM/pkg/session"
)

func setupTestDB(t *testing.T) *sql.DB {
	conn, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	conn.SetMaxOpenConns(1)

	assert.NoError(t, db.CreateTables(conn))
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestCreateAndValidate(t *testing.T) {
	repo := session.NewSQLRepo(setupTestDB(t))

	token, err := session.NewToken()
	assert.NoError(t, err)

	assert.NoError(t, repo.Create("alice", token))

	username, err := repo.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestValidateUnknownToken(t *testing.T) {
	repo := session.NewSQLRepo(setupTestDB(t))

	_, err := repo.Validate("nosuchtoken")
	assert.ErrorIs(t, err, session.ErrInvalid)
}

func TestValidateTamperedToken(t *testing.T) {
	repo := session.NewSQLRepo(setupTestDB(t))

	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, repo.Create("alice", token))

	// Flip every position one at a time; no variant may resolve.
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, err := repo.Validate(string(tampered))
		assert.ErrorIs(t, err, session.ErrInvalid)
	}
}

func TestValidateExpired(t *testing.T) {
	repo := session.NewSQLRepo(setupTestDB(t))
	repo.TTL = 30 * time.Millisecond

	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, repo.Create("bob", token))

	username, err := repo.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "bob", username)

	time.Sleep(60 * time.Millisecond)

	_, err = repo.Validate(token)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestDeleteExpired(t *testing.T) {
	conn := setupTestDB(t)
	repo := session.NewSQLRepo(conn)
	repo.TTL = -time.Minute // already expired at creation

	token, err := session.NewToken()
	assert.NoError(t, err)
	assert.NoError(t, repo.Create("bob", token))

	assert.NoError(t, repo.DeleteExpired())

	// The row is gone, so the token is now unknown rather than expired.
	_, err = repo.Validate(token)
	assert.ErrorIs(t, err, session.ErrInvalid)
}

func TestNewToken(t *testing.T) {
	first, err := session.NewToken()
	assert.NoError(t, err)
	second, err := session.NewToken()
	assert.NoError(t, err)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}
