package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/icuchart/icuchart/internal/platform/auth"
)

var (
	// ErrMissingFields is returned when username or password is absent.
	ErrMissingFields = errors.New("username and password are required")
	// ErrInvalidCredentials is returned on any login failure. The message is
	// identical whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	users  UserRepository
	tokens *auth.TokenIssuer
}

func NewService(users UserRepository, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password and the default
// role. Duplicate usernames fail with ErrAlreadyExists; the unique constraint
// on the users table backstops the pre-check under concurrent registration.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingFields
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return s.users.Create(ctx, &User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleUser,
	})
}

// Login checks the credentials against the stored hash and issues a signed
// capability token embedding the user id and role.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingFields
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}
