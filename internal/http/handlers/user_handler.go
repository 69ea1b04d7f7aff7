package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

// GET /api/admin/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	us, err := h.Users.List(currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(us)
}

// POST /api/admin/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in domain.NewUser
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	u, err := h.Users.Create(currentUser(c), in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.user.create", map[string]any{"target_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// PUT /api/admin/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var p domain.UserPatch
	if err := bindJSON(c, &p); err != nil {
		return err
	}
	u, err := h.Users.Update(currentUser(c), id, p)
	if err != nil {
		h.denied(c, err, id)
		return err
	}
	log.Audit(c, "admin.user.update", map[string]any{"target_id": id, "password_changed": p.Password != nil})
	return c.JSON(u)
}

// DELETE /api/admin/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.Delete(currentUser(c), id); err != nil {
		h.denied(c, err, id)
		return err
	}
	log.Audit(c, "admin.user.delete", map[string]any{"target_id": id})
	return success(c)
}

func (h *UserHandler) denied(c *fiber.Ctx, err error, target int64) {
	if apperr.As(err).Kind == apperr.KindForbidden {
		log.Security(c, "access.denied.protected_user", map[string]any{"target_id": target})
	}
}
