// Package guard implements the navigation route guard that sits in front of
// the dashboard pages: unauthenticated requests to protected paths are
// bounced to the login page, authenticated requests to the login/register
// pages are bounced to the landing page, everything else passes through.
package guard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/capoo/capoo/pkg/security/jwt"
)

// DefaultCookieName is where the front end keeps the bearer credential.
const DefaultCookieName = "token"

// Config describes the route classification the guard evaluates.
type Config struct {
	// Protected paths require a credential.
	Protected []string
	// PublicOnly paths (login/register) bounce authenticated users.
	PublicOnly []string
	// LoginPath is the redirect target for unauthenticated protected access.
	LoginPath string
	// LandingPath is the redirect target for authenticated public-only access.
	LandingPath string
	// CookieName overrides DefaultCookieName.
	CookieName string
	// Validate, when set, must report whether the presented token is
	// currently valid; a failing token is treated as absent. When nil the
	// guard degrades to presence-only gating.
	Validate func(token string) bool
}

// New builds the guard middleware. The guard is a pure function of the
// request path and the credential; it never consults the credential store.
func New(cfg Config) fiber.Handler {
	protected := toSet(cfg.Protected)
	publicOnly := toSet(cfg.PublicOnly)
	cookie := cfg.CookieName
	if cookie == "" {
		cookie = DefaultCookieName
	}
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookie)
		if token == "" {
			token = jwt.TokenFromHeader(c.Get(fiber.HeaderAuthorization))
		}
		if token != "" && cfg.Validate != nil && !cfg.Validate(token) {
			token = ""
		}

		path := c.Path()
		switch {
		case protected[path] && token == "":
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		case publicOnly[path] && token != "":
			return c.Redirect(cfg.LandingPath, fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}

func toSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}
