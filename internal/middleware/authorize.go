package middleware

import (
	"lavajato-backend/internal/constants"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission checks the acting membership's role against the
// permission table. Must run after RequireTenant.
func RequirePermission(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		membership := CurrentMembership(c)
		if membership == nil {
			return response.Forbidden(c, "No tenant access")
		}
		if !constants.HasPermission(membership.Role, action) {
			return response.Forbidden(c, "Permission denied")
		}
		return c.Next()
	}
}
