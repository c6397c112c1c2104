package auth

import (
	"encoding/json"

	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles auth handlers with dependencies.
type Handlers struct {
	Service *Service
}

// Login POST /auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Username and password required", fiber.StatusBadRequest)
	}
	result, err := h.Service.Login(c.Context(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, result)
}

// Refresh POST /auth/refresh
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Refresh token required", fiber.StatusBadRequest)
	}
	access, err := h.Service.Refresh(body.RefreshToken)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.JSON(c, fiber.Map{"accessToken": access})
}

// Me GET /me
func (h *Handlers) Me(c *fiber.Ctx) error {
	return response.JSON(c, fiber.Map{"user": middleware.CurrentUser(c)})
}
