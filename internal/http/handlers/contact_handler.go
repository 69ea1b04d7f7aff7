package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/domain"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
)

type ContactHandler struct {
	Contact *services.ContactService
}

// POST /api/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in domain.ContactInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	r, err := h.Contact.Submit(in)
	if err != nil {
		return err
	}
	log.Info(c, "contact.submit", map[string]any{"contact_id": r.ID, "call_back": r.RequestCallBack})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": r.ID})
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	rs, err := h.Contact.List()
	if err != nil {
		return err
	}
	return c.JSON(list(rs))
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.Contact.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// PUT /api/admin/contact-requests/:id/status
func (h *ContactHandler) SetStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in domain.ContactStatusInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	r, err := h.Contact.SetStatus(id, in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.contact.status", map[string]any{"contact_id": id, "status": r.Status})
	return c.JSON(r)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Contact.Delete(id); err != nil {
		return err
	}
	log.Audit(c, "admin.contact.delete", map[string]any{"contact_id": id})
	return success(c)
}
