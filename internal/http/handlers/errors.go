package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"chemcatalog/internal/apperr"
	"chemcatalog/internal/config"
	"chemcatalog/internal/log"
)

// ErrorHandler is the single exit for failed requests. API paths always get
// a JSON body; everything else gets the notfound page.
func ErrorHandler(cfg config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := fiber.StatusInternalServerError, "Internal Server Error"

		var fe *fiber.Error
		var ae *apperr.Error
		switch {
		case errors.As(err, &ae):
			status, msg = apperr.Status(ae.Kind), ae.Message
			if ae.Kind == apperr.KindLocked && ae.RetryAfter > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(ae.RetryAfter.Seconds()))))
			}
		case errors.As(err, &fe):
			status, msg = fe.Code, fe.Message
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error(c, "server.error", err, nil)
			msg = "Internal Server Error"
		case status == fiber.StatusBadRequest:
			log.Security(c, "validation.fail", map[string]any{"reason": msg})
		}

		if isAPI(c) {
			body := fiber.Map{"error": msg}
			if status >= fiber.StatusInternalServerError && !cfg.IsProduction() {
				body["detail"] = err.Error()
			}
			return c.Status(status).JSON(body)
		}
		if status == fiber.StatusNotFound {
			return page(c, status, "Page not found")
		}
		return page(c, status, "Something went wrong. Please try again.")
	}
}

func isAPI(c *fiber.Ctx) bool {
	p := c.Path()
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
