package team

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lavajato-backend/internal/constants"
	"lavajato-backend/internal/middleware"
	"lavajato-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTeamApp(t *testing.T) (*fiber.App, *fakeSender, *gorm.DB, *models.Tenant) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{}, &models.User{}, &models.Membership{}, &models.InviteToken{}, &models.AuditLog{},
	))

	tenant := &models.Tenant{Name: "Espaço Braite", Slug: "espaco-braite"}
	require.NoError(t, db.Create(tenant).Error)

	owner := &models.User{Email: "owner@equipe.test", Username: "owner", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)

	sender := &fakeSender{}
	h := &Handlers{Service: &Service{DB: db, Mail: sender, InviteBaseURL: "http://localhost:3000"}}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	// Simulate the auth and tenant middlewares for protected routes.
	withActor := func(c *fiber.Ctx) error {
		c.Locals("user", owner)
		c.Locals("membership", &models.Membership{
			UserID:   owner.ID,
			TenantID: tenant.ID,
			Role:     constants.RoleOwner,
			Tenant:   tenant,
		})
		return c.Next()
	}
	app.Get("/team", withActor, h.List)
	app.Post("/team/invite", withActor, h.Invite)
	app.Get("/team/invite/:token", h.CheckToken)
	app.Post("/team/accept", h.Accept)

	return app, sender, db, tenant
}

func TestInviteHandler_Success(t *testing.T) {
	app, sender, _, _ := setupTeamApp(t)

	body, _ := json.Marshal(map[string]string{"email": "nova@equipe.test", "role": "attendant"})
	req := httptest.NewRequest("POST", "/team/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Invite sent successfully", out["message"])
	assert.NotContains(t, out, "token")
	assert.Equal(t, []string{"nova@equipe.test"}, sender.sent)
}

// When delivery fails the token is surfaced so it can be shared manually.
func TestInviteHandler_MailFailureReturnsToken(t *testing.T) {
	app, sender, _, _ := setupTeamApp(t)
	sender.failing = true

	body, _ := json.Marshal(map[string]string{"email": "nova@equipe.test", "role": "attendant"})
	req := httptest.NewRequest("POST", "/team/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Invite created but email failed to send", out["message"])
	assert.NotEmpty(t, out["token"])
}

func TestInviteHandler_InvalidRole(t *testing.T) {
	app, _, _, _ := setupTeamApp(t)

	body, _ := json.Marshal(map[string]string{"email": "nova@equipe.test", "role": "owner"})
	req := httptest.NewRequest("POST", "/team/invite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckTokenHandler(t *testing.T) {
	app, _, db, tenant := setupTeamApp(t)

	svc := &Service{DB: db, Mail: &fakeSender{}, InviteBaseURL: "http://localhost:3000"}
	result, err := svc.Invite(context.Background(), tenant.ID, tenant.Name, uuid.New(), InviteInput{
		Email: "nova@equipe.test",
		Role:  constants.RoleViewer,
	})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/team/invite/"+result.Token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Invite struct {
			Email      string `json:"email"`
			Role       string `json:"role"`
			TenantName string `json:"tenant_name"`
		} `json:"invite"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "nova@equipe.test", out.Invite.Email)
	assert.Equal(t, "Espaço Braite", out.Invite.TenantName)
}

func TestCheckTokenHandler_Unknown(t *testing.T) {
	app, _, _, _ := setupTeamApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/team/invite/deadbeef", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAcceptHandler(t *testing.T) {
	app, _, db, tenant := setupTeamApp(t)

	svc := &Service{DB: db, Mail: &fakeSender{}, InviteBaseURL: "http://localhost:3000"}
	result, err := svc.Invite(context.Background(), tenant.ID, tenant.Name, uuid.New(), InviteInput{
		Email: "nova@equipe.test",
		Role:  constants.RoleAttendant,
	})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{
		"token":    result.Token,
		"username": "nova",
		"password": "s3nha",
	})
	req := httptest.NewRequest("POST", "/team/accept", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "nova").Error)
	assert.Equal(t, "nova@equipe.test", user.Email)
}
