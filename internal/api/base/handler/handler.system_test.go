package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"quickart/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleHealth_AllOK(t *testing.T) {
	h := NewSystemHandler()
	h.AddCheck("database", func(ctx context.Context) error { return nil })

	app := fiber.New()
	app.Get("/health", h.HandleHealth)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "ok", data["services"].(map[string]interface{})["database"])
}

func TestHandleHealth_Degraded(t *testing.T) {
	h := NewSystemHandler()
	h.AddCheck("database", func(ctx context.Context) error { return nil })
	h.AddCheck("cache", func(ctx context.Context) error { return errors.New("connection refused") })

	app := fiber.New()
	app.Get("/health", h.HandleHealth)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "error", body["status"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "connection refused", data["cache_error"])
	assert.Equal(t, "ok", data["services"].(map[string]interface{})["database"])
}

func TestHandleResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c fiber.Ctx) error { return HandleResponse(c, fiber.Map{"a": 1}, nil) })
	app.Get("/custom", func(c fiber.Ctx) error { return HandleResponse(c, nil, common.ErrMapNotFound) })
	app.Get("/plain", func(c fiber.Ctx) error { return HandleResponse(c, nil, errors.New("boom")) })
	app.Get("/panic", func(c fiber.Ctx) error {
		return SafeHandler(c, func() error { panic("bad state") })
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "success", decodeBody(t, resp.Body)["status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/custom", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Map not found", body["message"])
	assert.Equal(t, "VAL_001", body["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "SYS_001", decodeBody(t, resp.Body)["code"])

	resp, err = app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, "SYS_001", body["code"])
	assert.NotContains(t, body["message"], "bad state")
}

func TestHandleHealth_CheckPanicRecovered(t *testing.T) {
	h := NewSystemHandler()
	h.AddCheck("database", func(ctx context.Context) error { panic("driver exploded") })

	app := fiber.New()
	app.Get("/health", h.HandleHealth)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body["message"], "driver exploded")
}
