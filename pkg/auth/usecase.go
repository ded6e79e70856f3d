package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown, so that a miss
// costs roughly the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// UseCase describes registration, authentication and profile behavior.
type UseCase interface {
	Register(ctx context.Context, email, password, name string) (PublicUser, error)
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	GetProfile(ctx context.Context, id uuid.UUID) (PublicUser, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (PublicUser, error)
}

type service struct {
	users      UserRepository
	refresh    RefreshTokenRepository
	tokens     TokenGenerator
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService returns the default UseCase implementation.
func NewService(users UserRepository, refresh RefreshTokenRepository, tokens TokenGenerator, refreshTTL time.Duration) UseCase {
	return &service{
		users:      users,
		refresh:    refresh,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Register(ctx context.Context, email, password, name string) (PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return PublicUser{}, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return PublicUser{}, fmt.Errorf("%w: malformed email", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return PublicUser{}, err
	}

	now := s.now()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Uniqueness is enforced inside Create, under the store's own exclusion.
	if err := s.users.Create(ctx, user); err != nil {
		return PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return TokenPair{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issuePair(ctx, user)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	stored, err := s.refresh.Find(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	// Single use: the presented token is retired even when it turns out to
	// be expired.
	if err := s.refresh.Delete(ctx, refreshToken); err != nil {
		return TokenPair{}, err
	}
	if s.now().After(stored.ExpiresAt) {
		return TokenPair{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issuePair(ctx, user)
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (PublicUser, error) {
	user, err := s.users.Update(ctx, id, patch, s.now())
	if err != nil {
		return PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *service) issuePair(ctx context.Context, user User) (TokenPair, error) {
	access, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.refresh.Create(ctx, user.ID, refresh, s.refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokens.TTL().Seconds()),
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
