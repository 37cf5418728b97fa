package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user row matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when a username is already taken.
	ErrAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
