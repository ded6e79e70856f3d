package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/capoo/capoo/pkg/auth"
)

const userColumns = `id, email, name, avatar_url, password_hash, role, is_verified, created_at, updated_at`

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
// Schema is managed by the goose migrations in pkg/storage/postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Email, user.Name, user.AvatarURL, user.PasswordHash,
		user.Role, user.IsVerified, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// Update merges the patch in a single UPDATE, so concurrent updates for the
// same subject serialize on the row.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch auth.ProfilePatch, updatedAt time.Time) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name       = COALESCE($2, name),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = $4
		WHERE id = $1
		RETURNING `+userColumns, id, patch.Name, patch.AvatarURL, updatedAt)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, error) {
	var user auth.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.AvatarURL,
		&user.PasswordHash, &user.Role, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}
