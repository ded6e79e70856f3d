package presenter

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/capoo/capoo/pkg/auth"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// FromError translates domain errors into status-coded responses. An absent
// user and a bad password share one 401 message, so callers cannot probe
// which accounts exist.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidArgument):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotFound):
		return Error(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, auth.ErrEmailTaken):
		return Error(c, http.StatusConflict, "Email already registered")
	default:
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}
