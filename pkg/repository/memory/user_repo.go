// Package memory provides process-lifetime repository implementations used
// in tests and when no DATABASE_URL is configured. All state is lost on
// restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capoo/capoo/pkg/auth"
)

// UserRepository implements auth.UserRepository over plain maps. The lock
// spans whole lookup-then-insert and lookup-then-merge-then-write sequences,
// so concurrent registrations with the same email, or concurrent updates for
// the same subject, cannot race into duplicated or torn records.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]auth.User
	byEmail map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]auth.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return auth.ErrEmailTaken
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch auth.ProfilePatch, updatedAt time.Time) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	user.UpdatedAt = updatedAt
	r.byID[id] = user
	return user, nil
}
