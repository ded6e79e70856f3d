package auth

import (
	"time"

	"github.com/google/uuid"
)

// RoleUser is the capability tag assigned to every account at creation.
const RoleUser = "user"

// User is the canonical account record. The credential store owns the only
// copy; PasswordHash must never cross the API boundary, use Public() first.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string
	Role         string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection of User that is safe to serialize to clients.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		AvatarURL:  u.AvatarURL,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched; non-nil fields overwrite, including empty strings.
type ProfilePatch struct {
	Name      *string
	AvatarURL *string
}
