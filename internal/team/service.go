package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"lavajato-backend/internal/audit"
	"lavajato-backend/internal/auth"
	"lavajato-backend/internal/constants"
	"lavajato-backend/internal/emails"
	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"
	"lavajato-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const inviteExpiry = 7 * 24 * time.Hour

// Service manages team membership and the invite lifecycle.
type Service struct {
	DB            *gorm.DB
	Mail          emails.Sender
	InviteBaseURL string
	Audit         *audit.Recorder
}

// Member is one row of the team listing.
type Member struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// List returns the tenant's members in membership-creation order.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Member, error) {
	var out []Member
	err := s.DB.WithContext(ctx).
		Table("memberships").
		Select("users.id, users.email, users.username, users.full_name, memberships.role, memberships.created_at AS joined_at").
		Joins("JOIN users ON memberships.user_id = users.id").
		Where("memberships.tenant_id = ?", tenantID).
		Order("memberships.created_at ASC").
		Find(&out).Error
	return out, err
}

type InviteInput struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// InviteResult reports the created token and whether the email went out.
// A failed delivery never rolls back the token; the operator can hand the
// link out manually.
type InviteResult struct {
	Token     string
	EmailSent bool
}

// Invite creates an invite token for a new team member and emails the
// acceptance link. Inviting an email that already has an account fails.
func (s *Service) Invite(ctx context.Context, tenantID uuid.UUID, tenantName string, invitedBy uuid.UUID, in InviteInput) (*InviteResult, error) {
	if in.Email == "" || in.Role == "" {
		return nil, apperr.Validation("Email and role are required")
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, apperr.Validation("Invalid email address")
	}
	if !constants.IsInvitableRole(in.Role) {
		return nil, apperr.Validation("Invalid role")
	}

	normalized := strings.ToLower(in.Email)
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalized).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("User already exists")
	}

	invite := models.InviteToken{
		Token:     randomHex(32),
		Email:     normalized,
		TenantID:  tenantID,
		Role:      in.Role,
		InvitedBy: &invitedBy,
		ExpiresAt: time.Now().Add(inviteExpiry),
	}
	if err := s.DB.WithContext(ctx).Create(&invite).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, tenantID, &invitedBy, "team.invite", "invite_token", &invite.ID, map[string]interface{}{
		"email": normalized,
		"role":  in.Role,
	})

	result := &InviteResult{Token: invite.Token, EmailSent: true}
	inviteURL := fmt.Sprintf("%s/accept-invite?token=%s", s.InviteBaseURL, invite.Token)
	if s.Mail == nil {
		result.EmailSent = false
		return result, nil
	}
	if err := s.Mail.SendInvite(ctx, normalized, tenantName, in.Role, inviteURL); err != nil {
		log.Warn().Err(err).Str("email", normalized).Msg("invite email delivery failed")
		result.EmailSent = false
	}
	return result, nil
}

// TokenInfo is the public view of a pending invite.
type TokenInfo struct {
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	TenantName string    `json:"tenant_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// CheckToken validates an invite token without consuming it.
func (s *Service) CheckToken(ctx context.Context, token string) (*TokenInfo, error) {
	if token == "" {
		return nil, apperr.Validation("Invitation token is required")
	}
	var invite models.InviteToken
	err := s.DB.WithContext(ctx).Where("token = ?", token).First(&invite).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("Invalid invitation token")
	} else if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, apperr.Validation("Invitation has already been used")
	}
	if invite.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Validation("Invitation has expired")
	}

	var tenant models.Tenant
	tenantName := ""
	if err := s.DB.WithContext(ctx).First(&tenant, "id = ?", invite.TenantID).Error; err == nil {
		tenantName = tenant.Name
	}
	return &TokenInfo{
		Email:      invite.Email,
		Role:       invite.Role,
		TenantName: tenantName,
		ExpiresAt:  invite.ExpiresAt,
	}, nil
}

type AcceptInput struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Accept consumes an invite token: creates the user account, the
// membership with the granted role, and marks the token used, atomically.
func (s *Service) Accept(ctx context.Context, in AcceptInput) (*models.User, error) {
	if in.Token == "" || in.Username == "" || in.Password == "" {
		return nil, apperr.Validation("Token, username and password are required")
	}

	var invite models.InviteToken
	err := s.DB.WithContext(ctx).Where("token = ?", in.Token).First(&invite).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.Validation("Invalid invitation token")
	} else if err != nil {
		return nil, err
	}
	if invite.Used {
		return nil, apperr.Validation("Invitation has already been used")
	}
	if invite.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Validation("Invitation has expired")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", invite.Email, in.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("User already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        invite.Email,
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		membership := models.Membership{
			UserID:   user.ID,
			TenantID: invite.TenantID,
			Role:     invite.Role,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		invite.Used = true
		return tx.Save(&invite).Error
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, invite.TenantID, &user.ID, "team.accept_invite", "membership", nil, map[string]interface{}{
		"email": invite.Email,
		"role":  invite.Role,
	})
	return &user, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
