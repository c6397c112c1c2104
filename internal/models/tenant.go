package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is the isolation root: every business record belongs to exactly one tenant.
type Tenant struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Slug         string    `gorm:"column:slug;type:varchar(100);not null;uniqueIndex" json:"slug"`
	LogoURL      *string   `gorm:"column:logo_url" json:"logo_url"`
	PrimaryColor string    `gorm:"column:primary_color;type:varchar(7);default:'#0071CE'" json:"primary_color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// BeforeCreate sets the UUID for DBs without gen_random_uuid.
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
