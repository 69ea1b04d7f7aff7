package repos

import (
	"errors"
	"time"

	"chemcatalog/internal/domain"
)

var (
	// ErrNotFound is the not-found signal for lookups and updates.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (username) already exists.
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	GetUser(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	ListUsers() ([]domain.User, error)
	CreateUser(in domain.NewUser) (*domain.User, error)
	UpdateUser(id int64, p domain.UserPatch) (*domain.User, error)
	DeleteUser(id int64) (bool, error)
	// ValidateUser returns nil, nil on unknown username or wrong password.
	ValidateUser(username, plain string) (*domain.User, error)
}

type SessionStore interface {
	CreateSession(s domain.Session) error
	GetSession(token string) (*domain.Session, error)
	DeleteSession(token string) error
	DeleteUserSessions(userID int64) error
}

type CategoryStore interface {
	GetCategory(id int64) (*domain.Category, error)
	ListCategories() ([]domain.Category, error)
	CreateCategory(in domain.CategoryInput) (*domain.Category, error)
	UpdateCategory(id int64, p domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(id int64) (bool, error)
}

type ProductStore interface {
	GetProduct(id int64) (*domain.Product, error)
	ListProducts() ([]domain.Product, error)
	ListProductsByCategory(categoryID int64) ([]domain.Product, error)
	CreateProduct(in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(id int64, p domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(id int64) (bool, error)
}

type ProductImageStore interface {
	GetProductImage(id int64) (*domain.ProductImage, error)
	ListProductImages(productID int64) ([]domain.ProductImage, error)
	// CreateProductImage clears the main flag of the product's other images
	// in the same critical section when in.IsMain is set.
	CreateProductImage(productID int64, in domain.ProductImageInput) (*domain.ProductImage, error)
	SetMainProductImage(id int64) (*domain.ProductImage, error)
	DeleteProductImage(id int64) (bool, error)
}

type HeroImageStore interface {
	GetHeroImage(id int64) (*domain.HeroImage, error)
	ListHeroImages() ([]domain.HeroImage, error)
	// ListActiveHeroImages is the public carousel: active only, ascending order.
	ListActiveHeroImages() ([]domain.HeroImage, error)
	CreateHeroImage(in domain.HeroImageInput) (*domain.HeroImage, error)
	UpdateHeroImage(id int64, p domain.HeroImagePatch) (*domain.HeroImage, error)
	DeleteHeroImage(id int64) (bool, error)
}

type ContactStore interface {
	GetContactRequest(id int64) (*domain.ContactRequest, error)
	ListContactRequests() ([]domain.ContactRequest, error)
	CreateContactRequest(in domain.ContactInput) (*domain.ContactRequest, error)
	UpdateContactStatus(id int64, status string) (*domain.ContactRequest, error)
	DeleteContactRequest(id int64) (bool, error)
}

type SettingStore interface {
	GetSetting(key string) (*domain.Setting, error)
	ListSettings() ([]domain.Setting, error)
	UpsertSetting(key, value string) (*domain.Setting, error)
}

// Store is the single source of truth for every persisted entity.
type Store interface {
	UserStore
	SessionStore
	CategoryStore
	ProductStore
	ProductImageStore
	HeroImageStore
	ContactStore
	SettingStore
	Close() error
}

func stamp(now time.Time) string { return now.UTC().Format(time.RFC3339) }
