package services

import (
	"chemcatalog/internal/apperr"
	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/validate"
)

type ContentStore interface {
	repos.HeroImageStore
	repos.SettingStore
}

// ContentService owns the home page carousel and the site settings.
type ContentService struct {
	Store ContentStore
}

func NewContentService(s ContentStore) *ContentService {
	return &ContentService{Store: s}
}

// PublicHeroImages returns active slides in ascending order.
func (s *ContentService) PublicHeroImages() ([]domain.HeroImage, error) {
	hs, err := s.Store.ListActiveHeroImages()
	return hs, storeErr(err, "Hero image")
}

func (s *ContentService) AllHeroImages() ([]domain.HeroImage, error) {
	hs, err := s.Store.ListHeroImages()
	return hs, storeErr(err, "Hero image")
}

func (s *ContentService) CreateHeroImage(in domain.HeroImageInput) (*domain.HeroImage, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	h, err := s.Store.CreateHeroImage(in)
	return h, storeErr(err, "Hero image")
}

func (s *ContentService) UpdateHeroImage(id int64, p domain.HeroImagePatch) (*domain.HeroImage, error) {
	if err := validate.Struct(p); err != nil {
		return nil, err
	}
	h, err := s.Store.UpdateHeroImage(id, p)
	return h, storeErr(err, "Hero image")
}

func (s *ContentService) DeleteHeroImage(id int64) error {
	ok, err := s.Store.DeleteHeroImage(id)
	return deleteResult(ok, err, "Hero image")
}

// Settings returns all settings as a key/value map.
func (s *ContentService) Settings() (map[string]string, error) {
	list, err := s.Store.ListSettings()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	out := make(map[string]string, len(list))
	for _, st := range list {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *ContentService) Setting(key string) (*domain.Setting, error) {
	k, ok := validate.SettingKey(key)
	if !ok {
		return nil, apperr.Validation("invalid setting key")
	}
	st, err := s.Store.GetSetting(k)
	return st, storeErr(err, "Setting")
}

func (s *ContentService) PutSetting(key string, in domain.SettingInput) (*domain.Setting, error) {
	k, ok := validate.SettingKey(key)
	if !ok {
		return nil, apperr.Validation("invalid setting key")
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	st, err := s.Store.UpsertSetting(k, in.Value)
	return st, storeErr(err, "Setting")
}
