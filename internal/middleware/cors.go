package middleware

import (
	"strings"

	"porvenir-web/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds the origin rule for the JSON API.
type CORSConfig struct {
	// AllowedSuffix matches the tail of the Origin header, e.g. ".porvenir.com.bo".
	AllowedSuffix string
}

// CORS lets the map and search widgets of sibling sites call the JSON API.
// Requests without an Origin (same-origin, curl) pass through untouched.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}
		local := strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
		allowed := local || (cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)))
		if !allowed {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type, X-Trace-Id")
	c.Set("Vary", "Origin")
}
