package health

import (
	"context"
	"time"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers serves the health endpoint. Rdb may be nil; stats are then
// omitted.
type Handlers struct {
	Rdb *redis.Client
}

// Health GET /health (public). Reports liveness plus the request counters
// collected by the request-marker middleware when Redis is configured.
func (h *Handlers) Health(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.Rdb != nil {
		ctx := context.Background()
		total, err1 := h.Rdb.Get(ctx, middleware.KeyReqTotal).Int64()
		errors, err2 := h.Rdb.Get(ctx, middleware.KeyReqErrors).Int64()
		if err1 == nil || err2 == nil {
			body["stats"] = fiber.Map{
				"requests": total,
				"errors":   errors,
			}
		}
	}
	return response.JSON(c, body)
}
