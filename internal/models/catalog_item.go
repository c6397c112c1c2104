package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogItem is a sellable service offered by a tenant (wash, polish, ...).
type CatalogItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID        uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	Description     *string         `gorm:"column:description" json:"description"`
	Price           decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	DurationMinutes *int            `gorm:"column:duration_minutes" json:"duration_minutes"`
	Active          bool            `gorm:"column:active;default:true" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

func (i *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
