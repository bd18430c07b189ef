package user

import "errors"

var (
	ErrNotFound          = errors.New("user not found")
	ErrAlreadyExists     = errors.New("user already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
)

type User struct {
	Username     string
	PasswordHash string
	IsAdmin      bool
}

type Repository interface {
	Create(user *User) error
	FindByUsername(username string) (*User, error)
}
