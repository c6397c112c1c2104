package auth

import (
	"context"
	"testing"
	"time"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.User{}, &models.Membership{}))

	svc := &Service{DB: db, Tokens: testTokens()}
	return svc, db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	hash, err := HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FullName:     "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin_ByUsername(t *testing.T) {
	svc, db := setupAuthTest(t)
	createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	result, err := svc.Login(context.Background(), LoginInput{Username: "admin1", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "admin1", result.User.Username)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)
}

// The username field also accepts an email address.
func TestLogin_ByEmailInUsernameField(t *testing.T) {
	svc, db := setupAuthTest(t)
	createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	result, err := svc.Login(context.Background(), LoginInput{Username: "admin1@braite.test", Password: "123"})
	require.NoError(t, err)
	assert.Equal(t, "admin1", result.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := setupAuthTest(t)
	createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	_, err := svc.Login(context.Background(), LoginInput{Username: "admin1", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := setupAuthTest(t)

	_, err := svc.Login(context.Background(), LoginInput{Username: "admin1"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Login(context.Background(), LoginInput{Password: "123"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRefresh_IssuesUsableAccessToken(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	refresh, err := svc.Tokens.IssueRefreshToken(user.ID)
	require.NoError(t, err)

	access, err := svc.Refresh(refresh)
	require.NoError(t, err)

	got, ok := svc.VerifyAccess(access)
	require.True(t, ok)
	assert.Equal(t, user.ID, got)
}

// An access token handed to the refresh endpoint must be rejected.
func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	access, err := svc.Tokens.IssueAccessToken(user.ID)
	require.NoError(t, err)

	_, err = svc.Refresh(access)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestRefresh_Empty(t *testing.T) {
	svc, _ := setupAuthTest(t)
	_, err := svc.Refresh("")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

// Memberships come back oldest first so the default tenant is stable.
func TestUserWithMemberships_OrderedByCreation(t *testing.T) {
	svc, db := setupAuthTest(t)
	user := createTestUser(t, db, "admin1", "admin1@braite.test", "123")

	older := &models.Tenant{Name: "First Shop", Slug: "first-shop"}
	newer := &models.Tenant{Name: "Second Shop", Slug: "second-shop"}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	base := time.Now().UTC().Add(-time.Hour)
	// Insert the newer membership first to rule out insertion-order luck.
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, TenantID: newer.ID, Role: "manager", CreatedAt: base.Add(time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.Membership{
		UserID: user.ID, TenantID: older.ID, Role: "owner", CreatedAt: base,
	}).Error)

	full, err := svc.UserWithMemberships(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, full.Memberships, 2)
	assert.Equal(t, older.ID, full.Memberships[0].TenantID)
	assert.Equal(t, "owner", full.Memberships[0].Role)
	require.NotNil(t, full.Memberships[0].Tenant)
	assert.Equal(t, "First Shop", full.Memberships[0].Tenant.Name)
}

func TestUserWithMemberships_NotFound(t *testing.T) {
	svc, _ := setupAuthTest(t)
	_, err := svc.UserWithMemberships(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
