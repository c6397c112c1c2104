package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records a mutation against a tenant-scoped entity. Writes are
// best-effort; a failed audit insert never fails the mutation itself.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID   uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	UserID     *uuid.UUID     `gorm:"column:user_id;type:uuid" json:"user_id"`
	Action     string         `gorm:"column:action;type:varchar(100);not null" json:"action"`
	EntityType string         `gorm:"column:entity_type;type:varchar(50);not null" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"column:entity_id;type:uuid" json:"entity_id"`
	Changes    datatypes.JSON `gorm:"column:changes;type:jsonb" json:"changes"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
