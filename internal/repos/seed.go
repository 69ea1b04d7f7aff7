package repos

import (
	"errors"
	"log"

	"chemcatalog/internal/domain"
)

// SeedUsers ensures the bootstrap accounts exist (idempotent; safe to run every start).
func SeedUsers(s UserStore, users []domain.NewUser) error {
	for _, u := range users {
		_, err := s.GetUserByUsername(u.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := s.CreateUser(u); err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
		log.Printf("[seed] created %s user %q", u.Role, u.Username)
	}
	return nil
}
