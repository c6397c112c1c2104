package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a tenant's customer, with the vehicle they usually bring in.
type Client struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Phone        *string   `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email        *string   `gorm:"column:email" json:"email"`
	VehiclePlate *string   `gorm:"column:vehicle_plate;type:varchar(20)" json:"vehicle_plate"`
	VehicleModel *string   `gorm:"column:vehicle_model;type:varchar(100)" json:"vehicle_model"`
	Notes        *string   `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
