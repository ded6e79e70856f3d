package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors used by repositories/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
//
// Create must reject a duplicate email with ErrEmailTaken, and Update must
// apply the lookup-then-merge-then-write sequence atomically, so that two
// concurrent registrations or profile updates cannot produce duplicated or
// torn records.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch, updatedAt time.Time) (User, error)
}

// RefreshToken is a stored single-use credential granting a new token pair.
type RefreshToken struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// RefreshTokenRepository stores refresh tokens between issuance and rotation.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
