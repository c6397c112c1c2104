package audit

import (
	"context"
	"encoding/json"

	"lavajato-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recorder writes audit log rows for tenant-scoped mutations. Writes are
// best-effort: failures are logged and never propagated to the caller.
type Recorder struct {
	DB *gorm.DB
}

// Record persists one audit entry. changes may be nil.
func (r *Recorder) Record(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, action, entityType string, entityID *uuid.UUID, changes map[string]interface{}) {
	if r == nil || r.DB == nil {
		return
	}
	var payload datatypes.JSON
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			log.Warn().Err(err).Str("action", action).Msg("audit payload marshal failed")
			return
		}
		payload = datatypes.JSON(b)
	}
	entry := models.AuditLog{
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    payload,
	}
	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Str("entity_type", entityType).Msg("audit write failed")
	}
}
