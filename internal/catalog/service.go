package catalog

import (
	"context"

	"lavajato-backend/internal/audit"
	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

// CreateInput's Price accepts a JSON number or string; decimal keeps it exact.
type CreateInput struct {
	Name            string           `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes"`
}

// List returns the tenant's catalog, alphabetical by name.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]models.CatalogItem, error) {
	var out []models.CatalogItem
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// Create inserts a catalog item. Name and a non-negative decimal price are
// required.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, in CreateInput) (*models.CatalogItem, error) {
	if in.Name == "" || in.Price == nil {
		return nil, apperr.Validation("Name and price are required")
	}
	price := *in.Price
	if price.IsNegative() {
		return nil, apperr.Validation("Price must be a non-negative decimal")
	}
	item := models.CatalogItem{
		TenantID:        tenantID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           price,
		DurationMinutes: in.DurationMinutes,
		Active:          true,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, tenantID, actorID, "catalog_item.create", "catalog_item", &item.ID, map[string]interface{}{
		"name":  item.Name,
		"price": item.Price.String(),
	})
	return &item, nil
}

// Delete hard-deletes a catalog item scoped by tenant. Historical order
// items keep their snapshot; their catalog reference goes null via the
// FK's ON DELETE SET NULL.
func (s *Service) Delete(ctx context.Context, tenantID, itemID uuid.UUID, actorID *uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", itemID, tenantID).
		Delete(&models.CatalogItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Service not found")
	}
	s.Audit.Record(ctx, tenantID, actorID, "catalog_item.delete", "catalog_item", &itemID, nil)
	return nil
}
