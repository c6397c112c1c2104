package orders

import (
	"encoding/json"
	"fmt"

	"lavajato-backend/internal/invoice"
	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles order handlers with dependencies.
type Handlers struct {
	Service  *Service
	Renderer *invoice.Renderer
}

// List GET /orders
func (h *Handlers) List(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	list, err := h.Service.List(c.Context(), membership.TenantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"orders": list})
}

// Create POST /orders
func (h *Handlers) Create(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	var in CreateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Order must have at least one item", fiber.StatusBadRequest)
	}
	order, err := h.Service.Create(c.Context(), membership.TenantID, user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"order": order})
}

// Get GET /orders/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Order not found", fiber.StatusNotFound)
	}
	order, err := h.Service.Get(c.Context(), membership.TenantID, orderID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"order": order})
}

// Update PUT /orders/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Order not found", fiber.StatusNotFound)
	}
	var in UpdateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	order, err := h.Service.Update(c.Context(), membership.TenantID, orderID, &user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"order": order})
}

// PDF GET /orders/:id/pdf
func (h *Handlers) PDF(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Order not found", fiber.StatusNotFound)
	}
	pdf, err := h.Renderer.Render(c.Context(), orderID, membership.TenantID)
	if err != nil {
		return response.FromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="OS-%s.pdf"`, orderID))
	return c.Send(pdf)
}
