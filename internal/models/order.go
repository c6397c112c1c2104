package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. paid_at is stamped when an order reaches StatusPaid.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPaid       = "paid"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is one of the order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Order is an "ordem de serviço": services rendered to a client with a payment lifecycle.
// TotalAmount is the sum of its items' price*quantity, fixed at creation; items are
// immutable once the order exists.
type Order struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	ClientID      *uuid.UUID      `gorm:"column:client_id;type:uuid;constraint:OnDelete:SET NULL" json:"client_id"`
	OrderNumber   string          `gorm:"column:order_number;type:varchar(50);not null;uniqueIndex" json:"order_number"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod *string         `gorm:"column:payment_method;type:varchar(50)" json:"payment_method"`
	PaidAt        *time.Time      `gorm:"column:paid_at;index" json:"paid_at"`
	Notes         *string         `gorm:"column:notes" json:"notes"`
	CreatedBy     *uuid.UUID      `gorm:"column:created_by;type:uuid" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem snapshots service name and price at order creation, so deleting a
// catalog item later never rewrites history (the reference just goes null).
type OrderItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	CatalogItemID *uuid.UUID      `gorm:"column:catalog_item_id;type:uuid;constraint:OnDelete:SET NULL" json:"catalog_item_id"`
	ServiceName   string          `gorm:"column:service_name;not null" json:"service_name"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Quantity      int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
