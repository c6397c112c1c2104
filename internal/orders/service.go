package orders

import (
	"context"
	"time"

	"lavajato-backend/internal/audit"
	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNumberAttempts = 3

type Service struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

// ItemInput is one line of a new order. Price is the caller-supplied unit
// price, snapshotted as-is; catalog drift never rewrites past orders.
type ItemInput struct {
	CatalogItemID *uuid.UUID       `json:"catalog_item_id"`
	ServiceName   string           `json:"service_name"`
	Price         *decimal.Decimal `json:"price"`
	Quantity      int              `json:"quantity"`
}

type CreateInput struct {
	ClientID      *uuid.UUID  `json:"client_id"`
	Items         []ItemInput `json:"items"`
	Status        string      `json:"status"`
	PaymentMethod *string     `json:"payment_method"`
	Notes         *string     `json:"notes"`
}

// UpdateInput uses pointers so unset fields keep their prior values.
type UpdateInput struct {
	Status        *string `json:"status"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}

// ListRow is an order joined with its client's name and plate.
type ListRow struct {
	models.Order
	ClientName   *string `json:"client_name"`
	VehiclePlate *string `json:"vehicle_plate"`
}

// DetailRow is an order joined with full client contact fields.
type DetailRow struct {
	models.Order
	ClientName   *string `json:"client_name"`
	ClientPhone  *string `json:"client_phone"`
	VehiclePlate *string `json:"vehicle_plate"`
	VehicleModel *string `json:"vehicle_model"`
}

// Create validates the items, computes the decimal-exact total and writes
// the order plus all items in one transaction: a failed item insert rolls
// back the order row.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, createdBy uuid.UUID, in CreateInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validation("Order must have at least one item")
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return nil, apperr.Validation("Invalid order status")
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ServiceName == "" {
			return nil, apperr.Validation("Item service_name is required")
		}
		if it.Price == nil || it.Price.IsNegative() {
			return nil, apperr.Validation("Item price must be a non-negative decimal")
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return nil, apperr.Validation("Item quantity must be at least 1")
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(qty))))
		items = append(items, models.OrderItem{
			CatalogItemID: it.CatalogItemID,
			ServiceName:   it.ServiceName,
			Price:         *it.Price,
			Quantity:      qty,
		})
	}

	var paidAt *time.Time
	if status == models.StatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	}

	order := models.Order{
		TenantID:      tenantID,
		ClientID:      in.ClientID,
		Status:        status,
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		PaidAt:        paidAt,
		Notes:         in.Notes,
		CreatedBy:     &createdBy,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := uniqueOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	s.Audit.Record(ctx, tenantID, &createdBy, "order.create", "order", &order.ID, map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"total_amount": order.TotalAmount.String(),
	})
	return &order, nil
}

// uniqueOrderNumber returns a candidate number not yet present, retrying a
// bounded number of times.
func uniqueOrderNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < orderNumberAttempts; i++ {
		candidate := newOrderNumber()
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", apperr.Validation("Could not allocate a unique order number")
}

// Update merges the provided fields. A transition to paid stamps paid_at
// unless one is already recorded; leaving paid keeps the original payment
// time as history.
func (s *Service) Update(ctx context.Context, tenantID, orderID uuid.UUID, actorID *uuid.UUID, in UpdateInput) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", orderID, tenantID).
		First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			return nil, apperr.Validation("Invalid order status")
		}
		order.Status = *in.Status
		changes["status"] = *in.Status
		if *in.Status == models.StatusPaid && order.PaidAt == nil {
			now := time.Now().UTC()
			order.PaidAt = &now
		}
	}
	if in.PaymentMethod != nil {
		order.PaymentMethod = in.PaymentMethod
		changes["payment_method"] = *in.PaymentMethod
	}
	if in.Notes != nil {
		order.Notes = in.Notes
		changes["notes"] = *in.Notes
	}

	if err := s.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, tenantID, actorID, "order.update", "order", &order.ID, changes)
	return &order, nil
}

// List returns the tenant's orders newest first, each with the client's
// name and plate.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]ListRow, error) {
	var rows []ListRow
	err := s.DB.WithContext(ctx).
		Table("orders").
		Select("orders.*, clients.name AS client_name, clients.vehicle_plate AS vehicle_plate").
		Joins("LEFT JOIN clients ON orders.client_id = clients.id").
		Where("orders.tenant_id = ?", tenantID).
		Order("orders.created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Get returns one order with client details and its full item set.
func (s *Service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*DetailRow, error) {
	var row DetailRow
	err := s.DB.WithContext(ctx).
		Table("orders").
		Select("orders.*, clients.name AS client_name, clients.phone AS client_phone, clients.vehicle_plate AS vehicle_plate, clients.vehicle_model AS vehicle_model").
		Joins("LEFT JOIN clients ON orders.client_id = clients.id").
		Where("orders.id = ? AND orders.tenant_id = ?", orderID, tenantID).
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&row.Items).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
