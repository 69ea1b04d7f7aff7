package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/log"
	"chemcatalog/internal/services"
	"chemcatalog/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(list(cats))
}

// GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// GET /api/categories/:id/products
func (h *CatalogHandler) CategoryProducts(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ps, err := h.Catalog.ProductsInCategory(id)
	if err != nil {
		return err
	}
	return c.JSON(list(ps))
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in domain.CategoryInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var p domain.CategoryPatch
	if err := bindJSON(c, &p); err != nil {
		return err
	}
	cat, err := h.Catalog.UpdateCategory(id, p)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.category.update", map[string]any{"category_id": id})
	return c.JSON(cat)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return err
	}
	log.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return success(c)
}

// GET /api/products?categoryId=
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var catID *int64
	if raw := c.Query("categoryId"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			return apperr.Validation("invalid categoryId")
		}
		catID = &id
	}
	ps, err := h.Catalog.ListProducts(catID)
	if err != nil {
		return err
	}
	return c.JSON(list(ps))
}

// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.CreateProduct(in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch domain.ProductPatch
	if err := bindJSON(c, &patch); err != nil {
		return err
	}
	p, err := h.Catalog.UpdateProduct(id, patch)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return err
	}
	log.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return success(c)
}

// POST /api/admin/products/:id/images
func (h *CatalogHandler) AddImage(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in domain.ProductImageInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	img, err := h.Catalog.AddProductImage(id, in)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.product_image.create", map[string]any{"product_id": id, "image_id": img.ID, "main": img.IsMain})
	return c.Status(fiber.StatusCreated).JSON(img)
}

// PUT /api/admin/product-images/:id/main
func (h *CatalogHandler) SetMainImage(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	img, err := h.Catalog.SetMainImage(id)
	if err != nil {
		return err
	}
	log.Audit(c, "admin.product_image.main", map[string]any{"product_id": img.ProductID, "image_id": id})
	return c.JSON(img)
}

func (h *CatalogHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteProductImage(id); err != nil {
		return err
	}
	log.Audit(c, "admin.product_image.delete", map[string]any{"image_id": id})
	return success(c)
}
