package main

import (
	"os"
	"os/signal"
	"syscall"

	"porvenir-web/internal/application/catalog"
	"porvenir-web/internal/config"
	"porvenir-web/internal/interfaces/router"
	"porvenir-web/internal/logger"
	"porvenir-web/internal/pkg/format"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())
	if err := format.SetLocale(cfg.SiteLocale); err != nil {
		log.Warn().Err(err).Str("locale", cfg.SiteLocale).Msg("unknown SITE_LOCALE, keeping default")
	}

	app, res, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}
	defer res.Close()

	if res.Redis != nil {
		log.Info().Msg("Redis connected")
	}
	if res.DB != nil {
		log.Info().Msg("Snapshot database connected")
	}

	warmer, err := catalog.NewWarmer(res.Catalog, cfg.CatalogRefreshCron)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog warmer")
	}
	warmer.Start()
	defer warmer.Stop()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msgf("Server running at http://localhost:%s", cfg.Port)
	log.Info().Msgf("Health check: http://localhost:%s/health/json", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
