package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	blogsvc "porvenir-web/internal/application/blogs"
	"porvenir-web/internal/application/catalog"
	listsvc "porvenir-web/internal/application/listings"
	"porvenir-web/internal/application/mapview"
	"porvenir-web/internal/config"
	"porvenir-web/internal/infrastructure/cache"
	"porvenir-web/internal/infrastructure/contentapi"
	"porvenir-web/internal/infrastructure/database"
	"porvenir-web/internal/infrastructure/snapshot"
	bloghandler "porvenir-web/internal/interfaces/handlers/blogs"
	healthhandler "porvenir-web/internal/interfaces/handlers/health"
	listhandler "porvenir-web/internal/interfaces/handlers/listings"
	pagehandler "porvenir-web/internal/interfaces/handlers/pages"
	"porvenir-web/internal/interfaces/views"
	"porvenir-web/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Resources are the long-lived clients behind the app. Redis and the
// database are optional; the content API is not.
type Resources struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Content   *contentapi.Client
	Snapshots *snapshot.Store
	Catalog   *catalog.Catalog
	Presets   mapview.Presets
}

// Connect opens every dependency named in cfg.
func Connect(ctx context.Context, cfg *config.Config) (*Resources, error) {
	if cfg.ContentAPIURL == "" {
		return nil, fmt.Errorf("CONTENT_API_URL is not set")
	}
	res := &Resources{}

	presets, err := mapview.LoadPresets(cfg.CityPresetsFile)
	if err != nil {
		return nil, err
	}
	res.Presets = presets

	res.Content = contentapi.New(cfg.ContentAPIURL, cfg.ContentAPIToken)
	res.Content.CacheTTL = cfg.CacheTTL

	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		res.Redis = rdb
		res.Content.Cache = cache.New(rdb, cache.DefaultPrefix)
	}

	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			res.Close()
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			res.Close()
			return nil, fmt.Errorf("migrate snapshot store: %w", err)
		}
		res.DB = db
		res.Snapshots = snapshot.New(db)
	}

	res.Catalog = newCatalog(res, cfg)
	return res, nil
}

func newCatalog(res *Resources, cfg *config.Config) *catalog.Catalog {
	var mirror catalog.Mirror
	if res.Snapshots != nil {
		mirror = res.Snapshots
	}
	return catalog.New(res.Content, mirror, cfg.CacheTTL)
}

// Close releases Redis and the database.
func (r *Resources) Close() {
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("close redis")
		}
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// MapStyle resolves MAP_STYLE: "light", "dark" or a full style URL.
func MapStyle(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "light":
		return mapview.StyleLight
	case "dark":
		return mapview.StyleDark
	default:
		return s
	}
}

// CreateApp connects every dependency and builds the app.
func CreateApp(cfg *config.Config) (*fiber.App, *Resources, error) {
	res, err := Connect(context.Background(), cfg)
	if err != nil {
		return nil, nil, err
	}
	app, err := NewApp(cfg, res)
	if err != nil {
		res.Close()
		return nil, nil, err
	}
	return app, res, nil
}

// NewApp wires routes over already connected resources.
func NewApp(cfg *config.Config, res *Resources) (*fiber.App, error) {
	engine := views.New()
	if err := engine.Load(); err != nil {
		return nil, err
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		Views:                   engine,
		PassLocalsToViews:       true,
	})

	site := views.DefaultSite()
	site.URL = cfg.SiteURL

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(middleware.Tracing())
	app.Use(views.Globals(site))
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(res.Redis))

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(views.Static()),
		MaxAge: 3600,
	}))

	hh := &healthhandler.Handlers{
		Rdb:            res.Redis,
		Content:        res.Content,
		HealthAdminKey: cfg.HealthAdminKey,
		Site:           site.Name,
	}
	if res.DB != nil {
		hh.DB = &gormDBPinger{db: res.DB}
	}
	app.Get("/health", hh.Dashboard)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	ls := &listsvc.Service{
		Source:           res.Content,
		Catalog:          res.Catalog,
		Presets:          res.Presets,
		Map:              mapview.SceneConfig{Style: MapStyle(cfg.MapStyle), Token: cfg.MapboxToken},
		MessagingBaseURL: cfg.MessagingBaseURL,
	}
	if res.Snapshots != nil {
		ls.Snapshots = res.Snapshots
	}
	lh := &listhandler.Handlers{Service: ls, SiteURL: cfg.SiteURL}

	app.Get("/", lh.Home)
	app.Get("/compra", redirectTo("/compra/page/1"))
	app.Get("/compra/page/:page", lh.Sale)
	app.Get("/destacados", redirectTo("/destacados/page/1"))
	app.Get("/destacados/page/:page", lh.Featured)
	app.Get("/alquiler", lh.Rent)
	app.Get("/alquiler/page/:page", redirectTo("/alquiler"))
	app.Get("/busqueda", lh.Search)
	app.Get("/inmueble/:slug", lh.Detail)

	bh := &bloghandler.Handlers{Service: &blogsvc.Service{Source: res.Content}}
	app.Get("/blog", redirectTo("/blog/page/1"))
	app.Get("/blog/page/:page", bh.Index)
	app.Get("/blog/:slug", bh.Post)

	ph := &pagehandler.Handlers{MessagingBaseURL: cfg.MessagingBaseURL, WhatsApp: site.WhatsApp}
	app.Get("/sobre-nosotros", pagehandler.Static("about", "Sobre nosotros"))
	app.Get("/guia-comprador", pagehandler.Static("buyer-guide", "Guía del comprador"))
	app.Get("/guia-vendedor", pagehandler.Static("seller-guide", "Guía del vendedor"))
	app.Get("/vender", ph.Sell)
	app.Get("/alquileres", ph.RentManagement)

	api := app.Group("/api/v1", middleware.CORS(middleware.CORSConfig{AllowedSuffix: cfg.AllowedOriginSuffix}))
	api.Get("/listings/search", lh.SearchJSON)
	api.Get("/listings/:slug", lh.DetailJSON)
	api.Get("/map/search", lh.MapJSON)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app, nil
}

func redirectTo(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect(path, fiber.StatusMovedPermanently)
	}
}
