package handlers

import (
	"encoding/base64"
	stdlog "log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/config"
	"chemcatalog/internal/log"
	"chemcatalog/web"
)

const (
	csrfCookie = "csrf_"
	csrfHeader = "X-CSRF-Token"
)

// cookieKey returns the configured cookie encryption key, or a fresh one
// when it is missing or malformed. A fresh key invalidates existing cookies.
func cookieKey(cfg config.Config) string {
	if raw, err := base64.StdEncoding.DecodeString(cfg.SessionSecret); err == nil && len(raw) == 32 {
		return cfg.SessionSecret
	}
	if cfg.SessionSecret != "" {
		stdlog.Printf("[warn] SESSION_SECRET is not a base64 32 byte key; generating an ephemeral one")
	} else {
		stdlog.Printf("[warn] SESSION_SECRET not set; sessions will not survive a restart")
	}
	return encryptcookie.GenerateKey()
}

// NewApp assembles the middleware chain and the route table.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")

	app := fiber.New(fiber.Config{
		AppName:      "chemcatalog",
		Views:        engine,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler(cfg),
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: cfg.CORSOrigins != "*",
			AllowHeaders:     "Origin, Content-Type, Accept, " + csrfHeader,
		}))
	}
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key:    cookieKey(cfg),
		Except: []string{csrfCookie},
	}))
	if cfg.CSRFEnabled {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "header:" + csrfHeader,
			CookieName:     csrfCookie,
			CookieSameSite: "Lax",
			CookieSecure:   cfg.CookieSecure,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				log.Security(c, "csrf.fail", nil)
				return apperr.Forbidden("Security check failed. Please refresh and try again.")
			},
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api", LoadUser(d.AuthService))

	// Auth routes (login throttled per IP on top of the per-username lockout)
	login := []fiber.Handler{}
	if cfg.LoginRateMax > 0 {
		login = append(login, limiter.New(limiter.Config{
			Max:        cfg.LoginRateMax,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				log.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests. Please try again later."})
			},
		}))
	}
	api.Post("/login", append(login, d.AuthHandler.Login)...)
	api.Post("/logout", d.AuthHandler.Logout)
	api.Get("/current-user", d.AuthHandler.CurrentUser)

	// Public reads
	api.Get("/categories", d.CatalogHandler.ListCategories)
	api.Get("/categories/:id", d.CatalogHandler.GetCategory)
	api.Get("/categories/:id/products", d.CatalogHandler.CategoryProducts)
	api.Get("/products", d.CatalogHandler.ListProducts)
	api.Get("/products/:id", d.CatalogHandler.GetProduct)
	api.Get("/hero-images", d.ContentHandler.PublicHeroImages)
	api.Get("/settings", d.ContentHandler.Settings)
	api.Get("/settings/:key", d.ContentHandler.Setting)
	api.Post("/contact", d.ContactHandler.Submit)

	// Admin
	admin := api.Group("/admin", RequireUser())
	admin.Post("/categories", d.CatalogHandler.CreateCategory)
	admin.Put("/categories/:id", d.CatalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", d.CatalogHandler.DeleteCategory)
	admin.Post("/products", d.CatalogHandler.CreateProduct)
	admin.Put("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.Delete("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.Post("/products/:id/images", d.CatalogHandler.AddImage)
	admin.Put("/product-images/:id/main", d.CatalogHandler.SetMainImage)
	admin.Delete("/product-images/:id", d.CatalogHandler.DeleteImage)
	admin.Get("/hero-images", d.ContentHandler.AllHeroImages)
	admin.Post("/hero-images", d.ContentHandler.CreateHeroImage)
	admin.Put("/hero-images/:id", d.ContentHandler.UpdateHeroImage)
	admin.Delete("/hero-images/:id", d.ContentHandler.DeleteHeroImage)
	admin.Put("/settings/:key", d.ContentHandler.PutSetting)
	admin.Get("/contact-requests", d.ContactHandler.List)
	admin.Get("/contact-requests/:id", d.ContactHandler.Get)
	admin.Put("/contact-requests/:id/status", d.ContactHandler.SetStatus)
	admin.Delete("/contact-requests/:id", d.ContactHandler.Delete)

	users := admin.Group("/users", RequireSuperAdmin())
	users.Get("/", d.UserHandler.List)
	users.Post("/", d.UserHandler.Create)
	users.Put("/:id", d.UserHandler.Update)
	users.Delete("/:id", d.UserHandler.Delete)

	// 404
	app.Use(func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	return app
}
