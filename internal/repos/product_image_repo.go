package repos

import (
	"chemcatalog/internal/domain"
)

const productImageCols = `id, product_id, image_url, is_main, sort_order`

func (s *SQLStore) GetProductImage(id int64) (*domain.ProductImage, error) {
	return getOne[domain.ProductImage](s.db, `SELECT `+productImageCols+` FROM product_images WHERE id = ?`, id)
}

func (s *SQLStore) ListProductImages(productID int64) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := s.db.Select(&out, `SELECT `+productImageCols+` FROM product_images WHERE product_id = ? ORDER BY sort_order, id`, productID)
	return out, err
}

func (s *SQLStore) CreateProductImage(productID int64, in domain.ProductImageInput) (*domain.ProductImage, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if in.IsMain {
		if _, err := tx.Exec(`UPDATE product_images SET is_main = 0 WHERE product_id = ?`, productID); err != nil {
			return nil, err
		}
	}
	res, err := tx.Exec(`INSERT INTO product_images(product_id, image_url, is_main, sort_order) VALUES(?,?,?,?)`,
		productID, in.ImageURL, boolInt(in.IsMain), in.Order)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	img, err := getOne[domain.ProductImage](tx, `SELECT `+productImageCols+` FROM product_images WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return img, tx.Commit()
}

// SetMainProductImage moves the main flag to image id within one transaction.
func (s *SQLStore) SetMainProductImage(id int64) (*domain.ProductImage, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	img, err := getOne[domain.ProductImage](tx, `SELECT `+productImageCols+` FROM product_images WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE product_images SET is_main = 0 WHERE product_id = ? AND id <> ?`, img.ProductID, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE product_images SET is_main = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}
	img.IsMain = true
	return img, tx.Commit()
}

func (s *SQLStore) DeleteProductImage(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM product_images WHERE id = ?`, id))
}
