package services

import (
	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/validate"
)

type CatalogStore interface {
	repos.CategoryStore
	repos.ProductStore
	repos.ProductImageStore
}

type CatalogService struct {
	Store CatalogStore
}

func NewCatalogService(s CatalogStore) *CatalogService {
	return &CatalogService{Store: s}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	cats, err := s.Store.ListCategories()
	return cats, storeErr(err, "Category")
}

func (s *CatalogService) GetCategory(id int64) (*domain.Category, error) {
	c, err := s.Store.GetCategory(id)
	return c, storeErr(err, "Category")
}

func (s *CatalogService) CreateCategory(in domain.CategoryInput) (*domain.Category, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	c, err := s.Store.CreateCategory(in)
	return c, storeErr(err, "Category")
}

func (s *CatalogService) UpdateCategory(id int64, p domain.CategoryPatch) (*domain.Category, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	c, err := s.Store.UpdateCategory(id, p)
	return c, storeErr(err, "Category")
}

// DeleteCategory leaves the category's products in place; their categoryId
// keeps pointing at the removed id.
func (s *CatalogService) DeleteCategory(id int64) error {
	ok, err := s.Store.DeleteCategory(id)
	return deleteResult(ok, err, "Category")
}

// ListProducts returns every product, or only those of categoryID when it is set.
func (s *CatalogService) ListProducts(categoryID *int64) ([]domain.Product, error) {
	var (
		ps  []domain.Product
		err error
	)
	if categoryID != nil {
		ps, err = s.Store.ListProductsByCategory(*categoryID)
	} else {
		ps, err = s.Store.ListProducts()
	}
	return ps, storeErr(err, "Product")
}

// ProductsInCategory requires the category to exist.
func (s *CatalogService) ProductsInCategory(categoryID int64) ([]domain.Product, error) {
	if _, err := s.Store.GetCategory(categoryID); err != nil {
		return nil, storeErr(err, "Category")
	}
	return s.ListProducts(&categoryID)
}

func (s *CatalogService) GetProduct(id int64) (*domain.ProductDetail, error) {
	p, err := s.Store.GetProduct(id)
	if err != nil {
		return nil, storeErr(err, "Product")
	}
	imgs, err := s.Store.ListProductImages(id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if imgs == nil {
		imgs = []domain.ProductImage{}
	}
	return &domain.ProductDetail{Product: *p, Images: imgs}, nil
}

func (s *CatalogService) CreateProduct(in domain.ProductInput) (*domain.Product, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	p, err := s.Store.CreateProduct(in)
	return p, storeErr(err, "Product")
}

func (s *CatalogService) UpdateProduct(id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	if patch.CategoryID.Set && !patch.CategoryID.Null && patch.CategoryID.Value < 1 {
		return nil, apperr.Validation("categoryId must be greater than 0")
	}
	p, err := s.Store.UpdateProduct(id, patch)
	return p, storeErr(err, "Product")
}

func (s *CatalogService) DeleteProduct(id int64) error {
	ok, err := s.Store.DeleteProduct(id)
	return deleteResult(ok, err, "Product")
}

// AddProductImage attaches an image to an existing product. Marking it main
// demotes the product's current main image.
func (s *CatalogService) AddProductImage(productID int64, in domain.ProductImageInput) (*domain.ProductImage, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.Store.GetProduct(productID); err != nil {
		return nil, storeErr(err, "Product")
	}
	img, err := s.Store.CreateProductImage(productID, in)
	return img, storeErr(err, "Product image")
}

func (s *CatalogService) SetMainImage(id int64) (*domain.ProductImage, error) {
	img, err := s.Store.SetMainProductImage(id)
	return img, storeErr(err, "Product image")
}

func (s *CatalogService) DeleteProductImage(id int64) error {
	ok, err := s.Store.DeleteProductImage(id)
	return deleteResult(ok, err, "Product image")
}
