package user

import (
	"fmt"

	"github.com/ziggoon/tinyDEM/pkg/password"
	"github.com/ziggoon/tinyDEM/pkg/session"
)

type ServiceInterface interface {
	Register(username, plaintext string, admin bool) error
	Login(username, plaintext string) (*User, string, error)
}

type Service struct {
	Repo     Repository
	Sessions session.Repository
	Hasher   *password.Hasher
}

func NewService(repo Repository, sessions session.Repository, hasher *password.Hasher) *Service {
	return &Service{Repo: repo, Sessions: sessions, Hasher: hasher}
}

// Register hashes the password and inserts the user. No existence
// pre-check: the store's uniqueness constraint decides under races.
func (s *Service) Register(username, plaintext string, admin bool) error {
	hash, err := s.Hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	return s.Repo.Create(&User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
	})
}

// Login verifies the credentials and issues a session token bound to
// the username.
func (s *Service) Login(username, plaintext string) (*User, string, error) {
	u, err := s.Repo.FindByUsername(username)
	if err != nil {
		return nil, "", err
	}

	if !s.Hasher.Verify(plaintext, u.PasswordHash) {
		return nil, "", ErrInvalidCredential
	}

	token, err := session.NewToken()
	if err != nil {
		return nil, "", fmt.Errorf("session token gen error: %w", err)
	}
	if err := s.Sessions.Create(u.Username, token); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return u, token, nil
}
