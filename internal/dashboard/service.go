package dashboard

import (
	"context"
	"time"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/orders"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const recentOrdersLimit = 10

// Service computes revenue aggregates. Location is the business timezone:
// "today" means the tenant's local calendar day, not the UTC day.
type Service struct {
	DB       *gorm.DB
	Location *time.Location
}

type Revenue struct {
	Today      decimal.Decimal `json:"today"`
	Last15Days decimal.Decimal `json:"last15Days"`
	Last30Days decimal.Decimal `json:"last30Days"`
}

type Result struct {
	Revenue      Revenue          `json:"revenue"`
	RecentOrders []orders.ListRow `json:"recentOrders"`
}

// Compute returns paid revenue for the local calendar day of now, the
// trailing 15 and 30 days, plus the 10 most recent orders of any status.
func (s *Service) Compute(ctx context.Context, tenantID uuid.UUID, now time.Time) (*Result, error) {
	local := now.In(s.Location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	today, err := s.paidRevenueBetween(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	last15, err := s.paidRevenueBetween(ctx, tenantID, now.AddDate(0, 0, -15), now)
	if err != nil {
		return nil, err
	}
	last30, err := s.paidRevenueBetween(ctx, tenantID, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	var recent []orders.ListRow
	err = s.DB.WithContext(ctx).
		Table("orders").
		Select("orders.*, clients.name AS client_name, clients.vehicle_plate AS vehicle_plate").
		Joins("LEFT JOIN clients ON orders.client_id = clients.id").
		Where("orders.tenant_id = ?", tenantID).
		Order("orders.created_at DESC").
		Limit(recentOrdersLimit).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	return &Result{
		Revenue:      Revenue{Today: today, Last15Days: last15, Last30Days: last30},
		RecentOrders: recent,
	}, nil
}

// Bounds are normalized to UTC so drivers that store timestamps as text
// compare them consistently. Revenue is summed in Go with decimals, never
// in SQL floats.
func (s *Service) paidRevenueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var rows []models.Order
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND paid_at >= ? AND paid_at < ?",
			tenantID, models.StatusPaid, from.UTC(), to.UTC()).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range rows {
		total = total.Add(o.TotalAmount)
	}
	return total, nil
}
