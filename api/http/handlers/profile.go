package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/capoo/capoo/api/http/presenter"
	"github.com/capoo/capoo/pkg/auth"
	"github.com/capoo/capoo/pkg/security/jwt"
)

type ProfileHandler struct {
	useCase auth.UseCase
}

func NewProfileHandler(useCase auth.UseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// subjectID resolves the authenticated principal from the locals set by the
// JWT middleware, never from client-supplied identity.
func subjectID(c *fiber.Ctx) (uuid.UUID, bool) {
	userIDStr, _ := c.Locals(jwt.LocalsUserID).(string)
	id, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

// Me returns the authenticated user's profile.
// @Summary Current user profile
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.PublicUser
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid credentials")
	}
	user, err := h.useCase.GetProfile(c.Context(), id)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateMe applies a partial profile update for the authenticated user.
// @Summary Update current user profile
// @Tags    users
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body updateProfileRequest true "profile patch"
// @Success 200 {object} auth.PublicUser
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [patch]
func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	id, ok := subjectID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Invalid credentials")
	}
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	user, err := h.useCase.UpdateProfile(c.Context(), id, auth.ProfilePatch{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, user)
}
