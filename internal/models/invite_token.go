package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteToken is a single-use credential letting an invited email join a
// tenant with a pre-assigned role. Expires 7 days after creation.
type InviteToken struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Token     string     `gorm:"column:token;not null;uniqueIndex" json:"token"`
	Email     string     `gorm:"column:email;not null" json:"email"`
	TenantID  uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Role      string     `gorm:"column:role;type:varchar(20);not null" json:"role"`
	InvitedBy *uuid.UUID `gorm:"column:invited_by;type:uuid" json:"invited_by"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	Used      bool       `gorm:"column:used;default:false" json:"used"`
	CreatedAt time.Time  `json:"created_at"`
}

func (InviteToken) TableName() string {
	return "invite_tokens"
}

func (i *InviteToken) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
