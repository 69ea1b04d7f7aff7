package repos

import (
	"chemcatalog/internal/domain"
)

const categoryCols = `id, name, description, image, created_at`

func (s *SQLStore) GetCategory(id int64) (*domain.Category, error) {
	return getOne[domain.Category](s.db, `SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
}

func (s *SQLStore) ListCategories() ([]domain.Category, error) {
	out := []domain.Category{}
	err := s.db.Select(&out, `SELECT `+categoryCols+` FROM categories ORDER BY id`)
	return out, err
}

func (s *SQLStore) CreateCategory(in domain.CategoryInput) (*domain.Category, error) {
	res, err := s.db.Exec(`INSERT INTO categories(name, description, image, created_at) VALUES(?,?,?,?)`,
		in.Name, in.Description, in.Image, stamp(s.now()))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCategory(id)
}

func (s *SQLStore) UpdateCategory(id int64, p domain.CategoryPatch) (*domain.Category, error) {
	c, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	applyCategoryPatch(c, p)
	if _, err := s.db.Exec(`UPDATE categories SET name = ?, description = ?, image = ? WHERE id = ?`,
		c.Name, c.Description, c.Image, id); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory leaves products that reference the category untouched.
func (s *SQLStore) DeleteCategory(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM categories WHERE id = ?`, id))
}

func applyCategoryPatch(c *domain.Category, p domain.CategoryPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.Image != nil {
		c.Image = p.Image
	}
}
