package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
)

const sessionCookie = "sid"

// LoadUser attaches the session's user to the request when the sid cookie
// resolves. It never rejects; the guards below do.
func LoadUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sessionCookie); sid != "" {
			u, err := auth.CurrentUser(sid)
			switch {
			case err == nil:
				c.Locals("user", u)
			case apperr.As(err).Kind == apperr.KindInternal:
				return err
			}
		}
		return c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.RequireUser(currentUser(c)); err != nil {
			log.Security(c, "access.denied", map[string]any{"reason": "unauthenticated"})
			return err
		}
		return c.Next()
	}
}

func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.RequireSuperAdmin(currentUser(c)); err != nil {
			log.Security(c, "access.denied.superadmin", nil)
			return err
		}
		return c.Next()
	}
}
