package handlers

import (
	"chemcatalog/internal/config"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/services"
)

type Deps struct {
	AuthService *services.AuthService

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	ContentHandler *ContentHandler
	ContactHandler *ContactHandler
	UserHandler    *UserHandler
}

func NewDeps(store repos.Store, cfg config.Config, lockout services.Lockout) *Deps {
	authSvc := services.NewAuthService(store, store, lockout, cfg.SessionTTL)

	return &Deps{
		AuthService:    authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		CatalogHandler: &CatalogHandler{Catalog: services.NewCatalogService(store)},
		ContentHandler: &ContentHandler{Content: services.NewContentService(store)},
		ContactHandler: &ContactHandler{Contact: services.NewContactService(store)},
		UserHandler:    &UserHandler{Users: services.NewUserService(store, cfg.ProtectedUsername)},
	}
}
