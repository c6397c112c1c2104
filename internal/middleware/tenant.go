package middleware

import (
	"encoding/json"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const membershipLocal = "membership"

// RequireTenant resolves the acting membership for the request: the
// tenant_id query or body param when present, otherwise the user's
// earliest-created membership. A user with no matching membership gets a
// 403, never a 404, so tenant existence is not leaked to non-members.
func RequireTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "No authentication token provided")
		}
		membership := resolveMembership(user, requestedTenantID(c))
		if membership == nil {
			return response.Forbidden(c, "No tenant access")
		}
		c.Locals(membershipLocal, membership)
		return c.Next()
	}
}

// requestedTenantID reads tenant_id from the query string, falling back to
// a tenant_id field in a JSON body.
func requestedTenantID(c *fiber.Ctx) string {
	if id := c.Query("tenant_id"); id != "" {
		return id
	}
	body := c.Body()
	if len(body) == 0 {
		return ""
	}
	var probe struct {
		TenantID string `json:"tenant_id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.TenantID
}

// resolveMembership relies on memberships being preloaded oldest-first.
func resolveMembership(user *models.User, tenantID string) *models.Membership {
	if tenantID == "" {
		if len(user.Memberships) == 0 {
			return nil
		}
		return &user.Memberships[0]
	}
	for i := range user.Memberships {
		if user.Memberships[i].TenantID.String() == tenantID {
			return &user.Memberships[i]
		}
	}
	return nil
}

// CurrentMembership returns the resolved membership from Locals.
func CurrentMembership(c *fiber.Ctx) *models.Membership {
	if m, ok := c.Locals(membershipLocal).(*models.Membership); ok {
		return m
	}
	return nil
}
