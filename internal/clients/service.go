package clients

import (
	"context"

	"lavajato-backend/internal/audit"
	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

type CreateInput struct {
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	VehiclePlate *string `json:"vehicle_plate"`
	VehicleModel *string `json:"vehicle_model"`
	Notes        *string `json:"notes"`
}

// UpdateInput uses pointers so unset fields keep their prior values.
type UpdateInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	VehiclePlate *string `json:"vehicle_plate"`
	VehicleModel *string `json:"vehicle_model"`
	Notes        *string `json:"notes"`
}

// List returns the tenant's clients, newest first.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]models.Client, error) {
	var out []models.Client
	err := s.DB.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// Create inserts a client. Name is the only required field.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, in CreateInput) (*models.Client, error) {
	if in.Name == "" {
		return nil, apperr.Validation("Name is required")
	}
	client := models.Client{
		TenantID:     tenantID,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		VehiclePlate: in.VehiclePlate,
		VehicleModel: in.VehicleModel,
		Notes:        in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, tenantID, actorID, "client.create", "client", &client.ID, map[string]interface{}{"name": client.Name})
	return &client, nil
}

// Update merges the provided fields into the client; unset fields keep
// their prior values.
func (s *Service) Update(ctx context.Context, tenantID, clientID uuid.UUID, actorID *uuid.UUID, in UpdateInput) (*models.Client, error) {
	var client models.Client
	err := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		First(&client).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("Client not found")
	} else if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if in.Name != nil {
		client.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Phone != nil {
		client.Phone = in.Phone
		changes["phone"] = *in.Phone
	}
	if in.Email != nil {
		client.Email = in.Email
		changes["email"] = *in.Email
	}
	if in.VehiclePlate != nil {
		client.VehiclePlate = in.VehiclePlate
		changes["vehicle_plate"] = *in.VehiclePlate
	}
	if in.VehicleModel != nil {
		client.VehicleModel = in.VehicleModel
		changes["vehicle_model"] = *in.VehicleModel
	}
	if in.Notes != nil {
		client.Notes = in.Notes
		changes["notes"] = *in.Notes
	}

	if err := s.DB.WithContext(ctx).Save(&client).Error; err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, tenantID, actorID, "client.update", "client", &client.ID, changes)
	return &client, nil
}

// Delete hard-deletes a client scoped by tenant.
func (s *Service) Delete(ctx context.Context, tenantID, clientID uuid.UUID, actorID *uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		Delete(&models.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Client not found")
	}
	s.Audit.Record(ctx, tenantID, actorID, "client.delete", "client", &clientID, nil)
	return nil
}
