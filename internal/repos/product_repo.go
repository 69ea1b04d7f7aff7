package repos

import (
	"chemcatalog/internal/domain"
)

const productCols = `id, name, description, category_id, created_at`

func (s *SQLStore) GetProduct(id int64) (*domain.Product, error) {
	return getOne[domain.Product](s.db, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
}

func (s *SQLStore) ListProducts() ([]domain.Product, error) {
	out := []domain.Product{}
	err := s.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (s *SQLStore) ListProductsByCategory(categoryID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := s.db.Select(&out, `SELECT `+productCols+` FROM products WHERE category_id = ? ORDER BY id`, categoryID)
	return out, err
}

// CreateProduct stores categoryId as given; it is not checked against categories.
func (s *SQLStore) CreateProduct(in domain.ProductInput) (*domain.Product, error) {
	res, err := s.db.Exec(`INSERT INTO products(name, description, category_id, created_at) VALUES(?,?,?,?)`,
		in.Name, in.Description, in.CategoryID, stamp(s.now()))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProduct(id)
}

func (s *SQLStore) UpdateProduct(id int64, p domain.ProductPatch) (*domain.Product, error) {
	prod, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	applyProductPatch(prod, p)
	if _, err := s.db.Exec(`UPDATE products SET name = ?, description = ?, category_id = ? WHERE id = ?`,
		prod.Name, prod.Description, prod.CategoryID, id); err != nil {
		return nil, err
	}
	return prod, nil
}

// DeleteProduct does not remove the product's images.
func (s *SQLStore) DeleteProduct(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM products WHERE id = ?`, id))
}

func applyProductPatch(prod *domain.Product, p domain.ProductPatch) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.CategoryID.Set {
		if p.CategoryID.Null {
			prod.CategoryID = nil
		} else {
			v := p.CategoryID.Value
			prod.CategoryID = &v
		}
	}
}
