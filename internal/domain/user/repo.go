package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means no identity matched the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert hits the unique email
	// constraint. The constraint, not the pre-insert existence check, is what
	// closes the concurrent-signup race.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
