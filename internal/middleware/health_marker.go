package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys shared by the marker and the health dashboard.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// ErrorLogSize caps the 5xx log kept in Redis.
const ErrorLogSize = 50

// ErrorEntry is one element of the error log.
type ErrorEntry struct {
	Time    time.Time `json:"time"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Status  int       `json:"status"`
	Message string    `json:"message"`
	TraceID string    `json:"traceId,omitempty"`
}

// HealthMarker records request stats in Redis (skips /health*, static assets and favicon).
// Chain errors are resolved through the app error handler first so the
// recorded status is the one the client actually receives.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx := context.Background()
		_, _ = rdb.Set(ctx, KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, KeyReqTotal).Result()

		var message string
		if err := c.Next(); err != nil {
			message = err.Error()
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, KeyResTime, float64(ms)).Result()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			_, _ = rdb.Incr(ctx, KeyReqErrors).Result()
			if message == "" {
				message = fiber.ErrInternalServerError.Message
			}
			entry, _ := json.Marshal(ErrorEntry{
				Time:    time.Now().UTC(),
				Method:  c.Method(),
				Path:    c.OriginalURL(),
				Status:  status,
				Message: message,
				TraceID: GetTraceID(c),
			})
			pipe := rdb.TxPipeline()
			pipe.LPush(ctx, KeyErrorLog, entry)
			pipe.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1)
			_, _ = pipe.Exec(ctx)
		}
		return nil
	}
}
