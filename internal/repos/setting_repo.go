package repos

import (
	"chemcatalog/internal/domain"
)

func (s *SQLStore) GetSetting(key string) (*domain.Setting, error) {
	return getOne[domain.Setting](s.db, `SELECT "key", value FROM settings WHERE "key" = ?`, key)
}

func (s *SQLStore) ListSettings() ([]domain.Setting, error) {
	out := []domain.Setting{}
	err := s.db.Select(&out, `SELECT "key", value FROM settings ORDER BY "key"`)
	return out, err
}

// UpsertSetting creates or replaces the value in a single statement.
func (s *SQLStore) UpsertSetting(key, value string) (*domain.Setting, error) {
	_, err := s.db.Exec(`INSERT INTO settings("key", value) VALUES(?,?)
                          ON CONFLICT("key") DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return nil, err
	}
	return &domain.Setting{Key: key, Value: value}, nil
}
