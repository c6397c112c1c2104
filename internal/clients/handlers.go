package clients

import (
	"encoding/json"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles client handlers with dependencies.
type Handlers struct {
	Service *Service
}

// List GET /clients
func (h *Handlers) List(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	list, err := h.Service.List(c.Context(), membership.TenantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"clients": list})
}

// Create POST /clients
func (h *Handlers) Create(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	var in CreateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Name is required", fiber.StatusBadRequest)
	}
	client, err := h.Service.Create(c.Context(), membership.TenantID, &user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"client": client})
}

// Update PUT /clients/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Client not found", fiber.StatusNotFound)
	}
	var in UpdateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	client, err := h.Service.Update(c.Context(), membership.TenantID, clientID, &user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"client": client})
}

// Delete DELETE /clients/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Client not found", fiber.StatusNotFound)
	}
	if err := h.Service.Delete(c.Context(), membership.TenantID, clientID, &user.ID); err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"message": "Client deleted successfully"})
}
