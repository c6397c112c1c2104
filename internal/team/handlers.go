package team

import (
	"encoding/json"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles team handlers with dependencies.
type Handlers struct {
	Service *Service
}

// List GET /team
func (h *Handlers) List(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	members, err := h.Service.List(c.Context(), membership.TenantID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"team": members})
}

// Invite POST /team/invite
func (h *Handlers) Invite(c *fiber.Ctx) error {
	membership := middleware.CurrentMembership(c)
	user := middleware.CurrentUser(c)

	var in InviteInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Email and role are required", fiber.StatusBadRequest)
	}
	tenantName := ""
	if membership.Tenant != nil {
		tenantName = membership.Tenant.Name
	}
	result, err := h.Service.Invite(c.Context(), membership.TenantID, tenantName, user.ID, in)
	if err != nil {
		return response.FromError(c, err)
	}
	if !result.EmailSent {
		return response.Created(c, fiber.Map{
			"message": "Invite created but email failed to send",
			"token":   result.Token,
		})
	}
	return response.Created(c, fiber.Map{"message": "Invite sent successfully"})
}

// CheckToken GET /team/invite/:token (public)
func (h *Handlers) CheckToken(c *fiber.Ctx) error {
	info, err := h.Service.CheckToken(c.Context(), c.Params("token"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"invite": info})
}

// Accept POST /team/accept (public)
func (h *Handlers) Accept(c *fiber.Ctx) error {
	var in AcceptInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Token, username and password are required", fiber.StatusBadRequest)
	}
	user, err := h.Service.Accept(c.Context(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{
		"message": "Invite accepted successfully",
		"user":    user,
	})
}
