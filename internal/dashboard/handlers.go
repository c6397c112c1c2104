package dashboard

import (
	"time"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles dashboard handlers with dependencies.
type Handlers struct {
	Service *Service
}

// Get GET /dashboard
func (h *Handlers) Get(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	result, err := h.Service.Compute(c.Context(), membership.TenantID, time.Now())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, result)
}
