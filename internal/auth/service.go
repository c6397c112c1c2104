package auth

import (
	"context"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service authenticates users and loads them with their memberships.
type Service struct {
	DB     *gorm.DB
	Tokens *Tokens
}

// LoginInput accepts a username or an email in the Username field.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Login finds the user by username or email and verifies the password.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	login := in.Username
	if login == "" {
		login = in.Email
	}
	if login == "" || in.Password == "" {
		return nil, apperr.Validation("Username and password required")
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.Unauthorized("Invalid credentials")
	} else if err != nil {
		return nil, err
	}

	if !VerifyPassword(in.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	full, err := s.UserWithMemberships(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	access, err := s.Tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: full, AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess checks an access token and returns the user id it carries.
func (s *Service) VerifyAccess(token string) (uuid.UUID, bool) {
	return s.Tokens.VerifyAccessToken(token)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperr.Validation("Refresh token required")
	}
	userID, ok := s.Tokens.VerifyRefreshToken(refreshToken)
	if !ok {
		return "", apperr.Unauthorized("Invalid refresh token")
	}
	return s.Tokens.IssueAccessToken(userID)
}

// UserWithMemberships loads a user and their memberships with tenants,
// memberships ordered oldest first so the default tenant is deterministic.
func (s *Service) UserWithMemberships(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Memberships.Tenant").
		First(&user, "id = ?", userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}
