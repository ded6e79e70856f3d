package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capoo/capoo/pkg/auth"
)

// RefreshTokenRepository implements auth.RefreshTokenRepository backed by
// PostgreSQL.
type RefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewRefreshTokenRepository(pool *pgxpool.Pool) *RefreshTokenRepository {
	return &RefreshTokenRepository{pool: pool}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, userID, token, time.Now().UTC().Add(validity))
	return err
}

func (r *RefreshTokenRepository) Find(ctx context.Context, token string) (auth.RefreshToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, token, expires_at
		FROM refresh_tokens WHERE token = $1
	`, token)
	var stored auth.RefreshToken
	if err := row.Scan(&stored.UserID, &stored.Token, &stored.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.RefreshToken{}, auth.ErrNotFound
		}
		return auth.RefreshToken{}, err
	}
	stored.ExpiresAt = stored.ExpiresAt.UTC()
	return stored, nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM refresh_tokens WHERE token = $1
	`, token)
	return err
}
