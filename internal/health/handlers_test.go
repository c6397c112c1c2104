package health

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lavajato-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_NoRedis(t *testing.T) {
	app := fiber.New()
	h := &Handlers{}
	app.Get("/health", h.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
	assert.NotEmpty(t, out["timestamp"])
	assert.NotContains(t, out, "stats")
}

func TestHealth_ReportsRequestCounters(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := &Handlers{Rdb: rdb}
	app := fiber.New()
	app.Use(middleware.RequestMarker(rdb))
	app.Get("/health", h.Health)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "boom"})
	})

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
		require.NoError(t, err)
	}
	_, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Status string `json:"status"`
		Stats  struct {
			Requests int64 `json:"requests"`
			Errors   int64 `json:"errors"`
		} `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
	assert.EqualValues(t, 4, out.Stats.Requests)
	assert.EqualValues(t, 1, out.Stats.Errors)
}

// Health traffic itself never shows up in the counters.
func TestRequestMarker_SkipsHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := &Handlers{Rdb: rdb}
	app := fiber.New()
	app.Use(middleware.RequestMarker(rdb))
	app.Get("/health", h.Health)

	for i := 0; i < 5; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
	}

	assert.False(t, mr.Exists(middleware.KeyReqTotal))
}
