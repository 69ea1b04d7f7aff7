package repos

import (
	"chemcatalog/internal/domain"
)

const heroCols = `id, image_url, title, subtitle, button_text, button_link, sort_order, is_active`

func (s *SQLStore) GetHeroImage(id int64) (*domain.HeroImage, error) {
	return getOne[domain.HeroImage](s.db, `SELECT `+heroCols+` FROM hero_images WHERE id = ?`, id)
}

func (s *SQLStore) ListHeroImages() ([]domain.HeroImage, error) {
	out := []domain.HeroImage{}
	err := s.db.Select(&out, `SELECT `+heroCols+` FROM hero_images ORDER BY sort_order, id`)
	return out, err
}

func (s *SQLStore) ListActiveHeroImages() ([]domain.HeroImage, error) {
	out := []domain.HeroImage{}
	err := s.db.Select(&out, `SELECT `+heroCols+` FROM hero_images WHERE is_active = 1 ORDER BY sort_order, id`)
	return out, err
}

func (s *SQLStore) CreateHeroImage(in domain.HeroImageInput) (*domain.HeroImage, error) {
	active := in.IsActive == nil || *in.IsActive
	res, err := s.db.Exec(`INSERT INTO hero_images(image_url, title, subtitle, button_text, button_link, sort_order, is_active)
                           VALUES(?,?,?,?,?,?,?)`,
		in.ImageURL, in.Title, in.Subtitle, in.ButtonText, in.ButtonLink, in.Order, boolInt(active))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetHeroImage(id)
}

func (s *SQLStore) UpdateHeroImage(id int64, p domain.HeroImagePatch) (*domain.HeroImage, error) {
	h, err := s.GetHeroImage(id)
	if err != nil {
		return nil, err
	}
	applyHeroPatch(h, p)
	if _, err := s.db.Exec(`UPDATE hero_images SET image_url = ?, title = ?, subtitle = ?, button_text = ?, button_link = ?,
                             sort_order = ?, is_active = ? WHERE id = ?`,
		h.ImageURL, h.Title, h.Subtitle, h.ButtonText, h.ButtonLink, h.Order, boolInt(h.IsActive), id); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *SQLStore) DeleteHeroImage(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM hero_images WHERE id = ?`, id))
}

func applyHeroPatch(h *domain.HeroImage, p domain.HeroImagePatch) {
	if p.ImageURL != nil {
		h.ImageURL = *p.ImageURL
	}
	if p.Title != nil {
		h.Title = p.Title
	}
	if p.Subtitle != nil {
		h.Subtitle = p.Subtitle
	}
	if p.ButtonText != nil {
		h.ButtonText = p.ButtonText
	}
	if p.ButtonLink != nil {
		h.ButtonLink = p.ButtonLink
	}
	if p.Order != nil {
		h.Order = *p.Order
	}
	if p.IsActive != nil {
		h.IsActive = *p.IsActive
	}
}
