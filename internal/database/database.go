package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lavajato-backend/internal/models"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists")
// behind connection poolers (PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate creates/updates the full schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Membership{},
		&models.Client{},
		&models.CatalogItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InviteToken{},
		&models.AuditLog{},
	)
}
