package services_test

import (
	"testing"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/services"
)

func memStore(t *testing.T) *repos.MemStore {
	t.Helper()
	s, err := repos.NewMemStore("")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCatalog_OrphanedProductSurvivesCategoryDelete(t *testing.T) {
	svc := services.NewCatalogService(memStore(t))

	cat, err := svc.CreateCategory(domain.CategoryInput{Name: "Acids"})
	if err != nil || cat.ID != 1 {
		t.Fatalf("create category: %+v %v", cat, err)
	}
	p, err := svc.CreateProduct(domain.ProductInput{Name: "HCl", Description: "Hydrochloric acid", CategoryID: &cat.ID})
	if err != nil || p.ID != 1 {
		t.Fatalf("create product: %+v %v", p, err)
	}
	ps, err := svc.ProductsInCategory(1)
	if err != nil || len(ps) != 1 || ps[0].Name != "HCl" {
		t.Fatalf("products in category: %+v %v", ps, err)
	}

	if err := svc.DeleteCategory(1); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetProduct(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryID == nil || *got.CategoryID != 1 {
		t.Fatalf("product should keep its orphaned categoryId, got %+v", got.CategoryID)
	}
	if _, err := svc.ProductsInCategory(1); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("deleted category should be 404, got %v", err)
	}
	if err := svc.DeleteCategory(1); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete should be 404, got %v", err)
	}
}

func TestCatalog_Validation(t *testing.T) {
	svc := services.NewCatalogService(memStore(t))
	if _, err := svc.CreateCategory(domain.CategoryInput{}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("empty category name: %v", err)
	}
	if _, err := svc.CreateProduct(domain.ProductInput{Name: "X"}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("missing description: %v", err)
	}
	if _, err := svc.UpdateProduct(1, domain.ProductPatch{CategoryID: domain.Some[int64](0)}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("zero categoryId: %v", err)
	}
	if _, err := svc.UpdateCategory(99, domain.CategoryPatch{}); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("missing category: %v", err)
	}
}

func TestCatalog_ProductImages(t *testing.T) {
	svc := services.NewCatalogService(memStore(t))
	if _, err := svc.AddProductImage(7, domain.ProductImageInput{ImageURL: "/uploads/a.png"}); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("image for missing product: %v", err)
	}

	p, _ := svc.CreateProduct(domain.ProductInput{Name: "NaOH", Description: "Sodium hydroxide"})
	a, err := svc.AddProductImage(p.ID, domain.ProductImageInput{ImageURL: "/uploads/a.png", IsMain: true, Order: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.AddProductImage(p.ID, domain.ProductImageInput{ImageURL: "/uploads/b.png", IsMain: true, Order: 0})
	if err != nil {
		t.Fatal(err)
	}

	d, _ := svc.GetProduct(p.ID)
	if len(d.Images) != 2 || d.Images[0].ID != b.ID {
		t.Fatalf("images not ordered by order: %+v", d.Images)
	}
	mains := 0
	for _, img := range d.Images {
		if img.IsMain {
			mains++
			if img.ID != b.ID {
				t.Fatalf("wrong main image %d", img.ID)
			}
		}
	}
	if mains != 1 {
		t.Fatalf("want exactly one main image, got %d", mains)
	}

	if _, err := svc.SetMainImage(a.ID); err != nil {
		t.Fatal(err)
	}
	d, _ = svc.GetProduct(p.ID)
	for _, img := range d.Images {
		if img.IsMain != (img.ID == a.ID) {
			t.Fatalf("main flag not moved: %+v", d.Images)
		}
	}

	if _, err := svc.AddProductImage(p.ID, domain.ProductImageInput{ImageURL: "javascript:alert(1)"}); kindOf(err) != apperr.KindValidation {
		t.Fatalf("bad image ref: %v", err)
	}
	if err := svc.DeleteProductImage(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteProductImage(a.ID); kindOf(err) != apperr.KindNotFound {
		t.Fatalf("second image delete: %v", err)
	}
}

func TestCatalog_ProductWithoutImages(t *testing.T) {
	svc := services.NewCatalogService(memStore(t))
	p, _ := svc.CreateProduct(domain.ProductInput{Name: "H2O", Description: "Water"})
	d, err := svc.GetProduct(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Images == nil {
		t.Fatal("images should serialize as [] not null")
	}
}
