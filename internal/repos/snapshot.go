package repos

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"chemcatalog/internal/domain"
)

// snapshot is the on-disk document: one object per collection keyed by the
// stringified id (settings by key).
type snapshot struct {
	Users           map[string]userRecord            `json:"users"`
	Categories      map[string]domain.Category       `json:"categories"`
	Products        map[string]domain.Product        `json:"products"`
	ProductImages   map[string]domain.ProductImage   `json:"productImages"`
	HeroImages      map[string]domain.HeroImage      `json:"heroImages"`
	ContactRequests map[string]domain.ContactRequest `json:"contactRequests"`
	Settings        map[string]domain.Setting        `json:"settings"`
}

// userRecord carries the hash, which domain.User never serializes.
type userRecord struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func key(id int64) string { return strconv.FormatInt(id, 10) }

func toKeyed[T any](m map[int64]T) map[string]T {
	out := make(map[string]T, len(m))
	for id, v := range m {
		out[key(id)] = v
	}
	return out
}

func fromKeyed[T any](m map[string]T, collection string) (map[int64]T, error) {
	out := make(map[int64]T, len(m))
	for k, v := range m {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: bad id %q: %w", collection, k, err)
		}
		out[id] = v
	}
	return out, nil
}

// persist writes the full state. Callers hold s.mu.
func (s *MemStore) persist() error {
	if s.path == "" {
		return nil
	}
	snap := snapshot{
		Users:           make(map[string]userRecord, len(s.users)),
		Categories:      toKeyed(s.categories),
		Products:        toKeyed(s.products),
		ProductImages:   toKeyed(s.productImages),
		HeroImages:      toKeyed(s.heroImages),
		ContactRequests: toKeyed(s.contacts),
		Settings:        make(map[string]domain.Setting, len(s.settings)),
	}
	for id, u := range s.users {
		snap.Users[key(id)] = userRecord{ID: u.ID, Username: u.Username, Password: u.Hash, Role: u.Role, CreatedAt: u.CreatedAt}
	}
	for k, v := range s.settings {
		snap.Settings[k] = domain.Setting{Key: k, Value: v}
	}

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	// temp file + rename so a crash mid-write leaves the previous snapshot intact
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *MemStore) load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return fmt.Errorf("snapshot %s: %w", s.path, err)
	}

	users, err := fromKeyed(snap.Users, "users")
	if err != nil {
		return err
	}
	for id, r := range users {
		s.users[id] = domain.User{ID: id, Username: r.Username, Hash: r.Password, Role: r.Role, CreatedAt: r.CreatedAt}
	}
	if s.categories, err = fromKeyed(snap.Categories, "categories"); err != nil {
		return err
	}
	if s.products, err = fromKeyed(snap.Products, "products"); err != nil {
		return err
	}
	if s.productImages, err = fromKeyed(snap.ProductImages, "productImages"); err != nil {
		return err
	}
	if s.heroImages, err = fromKeyed(snap.HeroImages, "heroImages"); err != nil {
		return err
	}
	if s.contacts, err = fromKeyed(snap.ContactRequests, "contactRequests"); err != nil {
		return err
	}
	for k, v := range snap.Settings {
		s.settings[k] = v.Value
	}
	return nil
}
