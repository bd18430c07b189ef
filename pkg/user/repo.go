package user

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

type SQLRepo struct {
	DB *sql.DB
}

func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

// Create inserts the user. Uniqueness is enforced by the primary key on
// username, so a concurrent double-registration yields exactly one
// success; the losers see ErrAlreadyExists.
func (r *SQLRepo) Create(user *User) error {
	_, err := r.DB.Exec(
		"INSERT INTO users (username, password_hash, admin) VALUES (?, ?, ?)",
		user.Username, user.PasswordHash, user.IsAdmin,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *SQLRepo) FindByUsername(username string) (*User, error) {
	var u User
	err := r.DB.QueryRow(
		"SELECT username, password_hash, admin FROM users WHERE username = ?",
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.IsAdmin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

func isDuplicate(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
