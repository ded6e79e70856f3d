package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capoo/capoo/pkg/auth"
)

// RefreshTokenRepository implements auth.RefreshTokenRepository in memory.
type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{tokens: make(map[string]auth.RefreshToken)}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = auth.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(validity),
	}
	return nil
}

func (r *RefreshTokenRepository) Find(ctx context.Context, token string) (auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return auth.RefreshToken{}, auth.ErrNotFound
	}
	return stored, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}
