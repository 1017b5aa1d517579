package health

import (
	"crypto/subtle"
	"strings"
	"time"

	healthsvc "porvenir-web/internal/application/health"
	"porvenir-web/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb     *redis.Client
	DB      healthsvc.DBPinger
	Content healthsvc.ContentPinger
	// HealthAdminKey is either the plain key or its bcrypt hash ("$2a$...").
	HealthAdminKey string
	Site           string
}

func (h *Handlers) keyMatches(key string) bool {
	if key == "" || h.HealthAdminKey == "" {
		return false
	}
	if strings.HasPrefix(h.HealthAdminKey, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(h.HealthAdminKey), []byte(key)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.HealthAdminKey)) == 1
}

// Reset clears health stats in Redis. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if !h.keyMatches(c.Query("key")) {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}
	if err := healthsvc.Reset(c.UserContext(), h.Rdb, time.Now()); err != nil {
		return response.Error(c, err.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// JSON returns the collected health data.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB, h.Content)
	return c.JSON(fiber.Map{
		"service":      "porvenir-web",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the last 50 server errors recorded by the health marker.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := healthsvc.ErrorLog(c.UserContext(), h.Rdb, 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

// Dashboard returns the HTML status page with the current snapshot embedded.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB, h.Content)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return healthsvc.RenderDashboard(c, h.Site, result)
}
