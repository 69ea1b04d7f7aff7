package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/validate"
)

func currentUser(c *fiber.Ctx) *domain.PublicUser {
	u, _ := c.Locals("user").(*domain.PublicUser)
	return u
}

// pathID reads a positive numeric route parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, ok := validate.ID(c.Params(name))
	if !ok {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("request body must be valid JSON")
	}
	return nil
}

// list keeps empty collections serialized as [] rather than null.
func list[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

func page(c *fiber.Ctx, status int, msg string) error {
	if err := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); err != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
