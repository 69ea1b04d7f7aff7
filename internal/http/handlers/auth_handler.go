package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
	"chemcatalog/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in domain.Credentials
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(in); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": in.Username, "reason": "bad_format"})
		return apperr.Validation("Username and password are required")
	}

	sess, u, err := h.Auth.Login(c.UserContext(), in.Username, in.Password, c.Cookies(sessionCookie))
	if err != nil {
		switch apperr.As(err).Kind {
		case apperr.KindLocked:
			log.Security(c, "auth.login.locked", map[string]any{"username": in.Username})
		case apperr.KindUnauthenticated:
			log.Security(c, "auth.login.fail", map[string]any{"username": in.Username})
		}
		return err
	}

	h.setSID(c, sess.Token, sess.ExpiresAt)
	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return c.JSON(fiber.Map{"user": u})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.Cookies(sessionCookie)); err != nil {
		return err
	}
	h.setSID(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"success": true})
}

// GET /api/current-user
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return services.ErrNoSession
	}
	return c.JSON(fiber.Map{"user": u})
}
