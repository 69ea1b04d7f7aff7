package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/domain"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
)

// ContentHandler serves the hero carousel and site settings.
type ContentHandler struct {
	Content *services.ContentService
}

// GET /api/hero-images
func (h *ContentHandler) PublicHeroImages(c *fiber.Ctx) error {
	hs, err := h.Content.PublicHeroImages()
	if err != nil {
		return err
	}
	return c.JSON(list(hs))
}

// GET /api/admin/hero-images
func (h *ContentHandler) AllHeroImages(c *fiber.Ctx) error {
	hs, err := h.Content.AllHeroImages()
	if err != nil {
		return err
	}
	return c.JSON(list(hs))
}

func (h *ContentHandler) CreateHeroImage(c *fiber.Ctx) error {
	var in domain.HeroImageInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	hero, err := h.Content.CreateHeroImage(in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.hero.create", map[string]any{"hero_id": hero.ID})
	return c.Status(fiber.StatusCreated).JSON(hero)
}

func (h *ContentHandler) UpdateHeroImage(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var p domain.HeroImagePatch
	if err := bindJSON(c, &p); err != nil {
		return err
	}
	hero, err := h.Content.UpdateHeroImage(id, p)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.hero.update", map[string]any{"hero_id": id})
	return c.JSON(hero)
}

func (h *ContentHandler) DeleteHeroImage(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Content.DeleteHeroImage(id); err != nil {
		return err
	}
	log.Audit(c, "admin.hero.delete", map[string]any{"hero_id": id})
	return success(c)
}

// GET /api/settings
func (h *ContentHandler) Settings(c *fiber.Ctx) error {
	all, err := h.Content.Settings()
	if err != nil {
		return err
	}
	return c.JSON(all)
}

// GET /api/settings/:key
func (h *ContentHandler) Setting(c *fiber.Ctx) error {
	st, err := h.Content.Setting(c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(st)
}

// PUT /api/admin/settings/:key
func (h *ContentHandler) PutSetting(c *fiber.Ctx) error {
	var in domain.SettingInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	st, err := h.Content.PutSetting(c.Params("key"), in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.setting.update", map[string]any{"key": st.Key})
	return c.JSON(st)
}
