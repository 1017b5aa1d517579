package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	SiteURL             string // public origin used in share links, e.g. https://porvenir.bo
	SiteLocale          string
	ContentAPIURL       string
	ContentAPIToken     string
	CacheTTL            time.Duration
	RedisURL            string
	DatabaseURL         string // Postgres URL or SQLite path for the listing mirror
	MapboxToken         string
	MapStyle            string
	CityPresetsFile     string
	MessagingBaseURL    string
	CatalogRefreshCron  string
	HealthAdminKey      string // plain text or a bcrypt hash
	AllowedOriginSuffix string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SITE_LOCALE", "es")
	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("MAP_STYLE", "mapbox://styles/mapbox/light-v11")
	viper.SetDefault("MESSAGING_BASE_URL", "https://wa.me")
	viper.SetDefault("CATALOG_REFRESH_CRON", "@every 10m")

	contentURL := viper.GetString("CONTENT_API_URL")
	if contentURL == "" {
		contentURL = viper.GetString("NEXT_PUBLIC_BACKEND_URL")
	}
	mapboxToken := viper.GetString("MAPBOX_TOKEN")
	if mapboxToken == "" {
		mapboxToken = viper.GetString("NEXT_PUBLIC_MAPBOX_TOKEN")
	}

	return &Config{
		Env:                 viper.GetString("APP_ENV"),
		Port:                viper.GetString("PORT"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		SiteURL:             strings.TrimRight(viper.GetString("SITE_URL"), "/"),
		SiteLocale:          viper.GetString("SITE_LOCALE"),
		ContentAPIURL:       strings.TrimRight(contentURL, "/"),
		ContentAPIToken:     viper.GetString("CONTENT_API_TOKEN"),
		CacheTTL:            viper.GetDuration("CACHE_TTL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		MapboxToken:         mapboxToken,
		MapStyle:            viper.GetString("MAP_STYLE"),
		CityPresetsFile:     viper.GetString("CITY_PRESETS_FILE"),
		MessagingBaseURL:    viper.GetString("MESSAGING_BASE_URL"),
		CatalogRefreshCron:  viper.GetString("CATALOG_REFRESH_CRON"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		AllowedOriginSuffix: viper.GetString("ALLOWED_ORIGIN_SUFFIX"),
	}, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
