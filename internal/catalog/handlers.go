package catalog

import (
	"encoding/json"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles catalog handlers with dependencies.
type Handlers struct {
	Service *Service
}

// List GET /services
func (h *Handlers) List(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	list, err := h.Service.List(c.Context(), membership.TenantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"services": list})
}

// Create POST /services
func (h *Handlers) Create(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	var in CreateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Name and price are required", fiber.StatusBadRequest)
	}
	item, err := h.Service.Create(c.Context(), membership.TenantID, &user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"service": item})
}

// Delete DELETE /services/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Service not found", fiber.StatusNotFound)
	}
	if err := h.Service.Delete(c.Context(), membership.TenantID, itemID, &user.ID); err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"message": "Service deleted successfully"})
}
