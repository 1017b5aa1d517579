package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"porvenir-web/internal/middleware"

	"github.com/PuerkitoBio/goquery"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeContent struct{ err error }

func (f fakeContent) Ping(context.Context) error { return f.err }

func setupHealthHandlers(t *testing.T) *Handlers {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Handlers{
		Rdb:            rdb,
		Content:        fakeContent{},
		HealthAdminKey: "test-admin-key",
		Site:           "Porvenir",
	}
}

func newApp(h *Handlers) *fiber.App {
	app := fiber.New()
	app.Get("/health", h.Dashboard)
	app.Get("/health/reset", h.Reset)
	app.Get("/health/json", h.JSON)
	app.Get("/health/errors", h.Errors)
	return app
}

func TestReset_Unauthorized(t *testing.T) {
	app := newApp(setupHealthHandlers(t))

	// No key
	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "error", out["status"])
	assert.Equal(t, "Unauthorized", out["error"].(map[string]interface{})["message"])

	// Wrong key
	resp2, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp2.StatusCode)
}

func TestReset_Success(t *testing.T) {
	h := setupHealthHandlers(t)
	app := newApp(h)
	ctx := context.Background()
	require.NoError(t, h.Rdb.Set(ctx, middleware.KeyReqTotal, "5", 0).Err())

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=test-admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Stats reset successfully", out["message"])

	_, err = h.Rdb.Get(ctx, middleware.KeyReqTotal).Result()
	assert.ErrorIs(t, err, redis.Nil)
	_, err = h.Rdb.Get(ctx, middleware.KeyStartTime).Result()
	assert.NoError(t, err)
}

func TestReset_BcryptKey(t *testing.T) {
	h := setupHealthHandlers(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	h.HealthAdminKey = string(hash)
	app := newApp(h)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/reset?key=s3cret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health/reset?key="+string(hash), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJSON_ReturnsStructure(t *testing.T) {
	app := newApp(setupHealthHandlers(t))
	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "porvenir-web", out["service"])
	assert.Equal(t, "ok", out["status"])
	deps := out["dependencies"].(map[string]interface{})
	assert.Equal(t, "reachable", deps["contentApi"].(map[string]interface{})["status"])
	assert.Equal(t, "disabled", deps["database"].(map[string]interface{})["status"])
}

func TestJSON_ContentDownIsAnIssue(t *testing.T) {
	h := setupHealthHandlers(t)
	h.Content = fakeContent{err: errors.New("dial tcp: refused")}
	resp, err := newApp(h).Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "issue", out["status"])
}

func TestErrors_ReturnsArray(t *testing.T) {
	h := setupHealthHandlers(t)
	app := newApp(h)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var arr []interface{}
	require.NoError(t, json.Unmarshal(body, &arr))
	assert.Empty(t, arr)

	h.Rdb.LPush(context.Background(), middleware.KeyErrorLog, `{"time":"2026-01-01T12:00:00Z","path":"/api/v1/listings/search","method":"GET","status":502,"message":"test"}`)
	resp2, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	body2, _ := io.ReadAll(resp2.Body)
	var arr2 []map[string]interface{}
	require.NoError(t, json.Unmarshal(body2, &arr2))
	require.Len(t, arr2, 1)
	assert.Equal(t, "test", arr2[0]["message"])
	assert.Equal(t, 502.0, arr2[0]["status"])
}

func TestDashboard_ReturnsHTML(t *testing.T) {
	app := newApp(setupHealthHandlers(t))
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Porvenir · Estado del sitio", doc.Find("title").Text())
	assert.Equal(t, "All Systems Operational", doc.Find("#headline").Text())
	assert.Equal(t, 1, doc.Find("#dep-redis").Length())
	assert.Contains(t, doc.Find("#health-data").Text(), `"contentApi"`)
}
