package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by the auth middleware.
const (
	LocalsUserID = "userId"
	LocalsEmail  = "email"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it stores the token subject in c.Locals("userId") and the email
// claim in c.Locals("email").
func NewAuthMiddleware(verifier *Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := TokenFromHeader(c.Get("Authorization"))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		c.Locals(LocalsUserID, claims.Subject)
		c.Locals(LocalsEmail, claims.Email)
		return c.Next()
	}
}

// TokenFromHeader extracts the raw token from an Authorization header value.
// Supports both "Bearer <token>" and "<token>" (no prefix).
func TokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if strings.Contains(header, " ") {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	// Fallback: treat entire header as token (for non-standard clients).
	return header
}
