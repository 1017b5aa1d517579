// Package bootstrap builds the app for the serverless entry point, which
// cannot import internal packages directly.
package bootstrap

import (
	"porvenir-web/internal/config"
	"porvenir-web/internal/interfaces/router"
	"porvenir-web/internal/logger"
	"porvenir-web/internal/pkg/format"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// New creates the Fiber app. Serverless instances are short-lived, so the
// catalog is refreshed on demand by its TTL instead of by the cron warmer.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, false)
	if err := format.SetLocale(cfg.SiteLocale); err != nil {
		log.Warn().Err(err).Str("locale", cfg.SiteLocale).Msg("unknown SITE_LOCALE, keeping default")
	}
	app, _, err := router.CreateApp(cfg)
	return app, err
}
