package middleware

import (
	"context"
	"strings"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"
const accessTokenCookie = "access_token"

// Authenticator verifies access tokens and loads users (implemented by
// auth.Service; an interface here to allow test doubles).
type Authenticator interface {
	VerifyAccess(token string) (uuid.UUID, bool)
	UserWithMemberships(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// RequireAuth verifies the bearer token (or access_token cookie), loads the
// user with memberships and stores it in Locals.
func RequireAuth(svc Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return response.Unauthorized(c, "No authentication token provided")
		}
		userID, ok := svc.VerifyAccess(token)
		if !ok {
			return response.Unauthorized(c, "Invalid or expired token")
		}
		user, err := svc.UserWithMemberships(c.Context(), userID)
		if err != nil {
			return response.FromError(c, err)
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies(accessTokenCookie)
}

// CurrentUser returns the authenticated user from Locals (nil if absent).
func CurrentUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals(userLocal).(*models.User); ok {
		return u
	}
	return nil
}
