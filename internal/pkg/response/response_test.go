package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_DefaultsMetadata(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, "ok", []int{1, 2}, nil)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "ok", out["message"])
	assert.Equal(t, []interface{}{1.0, 2.0}, out["data"])
	assert.Equal(t, map[string]interface{}{}, out["metadata"])
}

func TestError_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Error(c, "Listing not found", fiber.StatusNotFound, nil)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out ErrorBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "Listing not found", out.Error.Message)
	assert.Equal(t, 404, out.Error.StatusCode)
}
