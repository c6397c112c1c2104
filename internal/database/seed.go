package database

import (
	"fmt"
	"time"

	"lavajato-backend/internal/auth"
	"lavajato-backend/internal/constants"
	"lavajato-backend/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const demoSlug = "espaco-braite-demo"

// Seed creates the demo tenant, owner account, service catalog, a sample
// client and one paid order. Idempotent: skips when the demo tenant exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tenant{}).Where("slug = ?", demoSlug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	logo := "/assets/logo/teste.png"
	tenant := models.Tenant{
		Name:         "Espaço Braite Demo",
		Slug:         demoSlug,
		PrimaryColor: "#0071CE",
		LogoURL:      &logo,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return err
	}

	hash, err := auth.HashPassword("123")
	if err != nil {
		return err
	}
	user := models.User{
		Email:        "admin1@braite.test",
		Username:     "admin1",
		PasswordHash: hash,
		FullName:     "Admin Braite",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	if err := db.Create(&models.Membership{
		UserID:   user.ID,
		TenantID: tenant.ID,
		Role:     constants.RoleOwner,
	}).Error; err != nil {
		return err
	}

	services := []struct {
		name, description string
		price             string
		duration          int
	}{
		{"Lavagem Completa", "Lavagem externa e interna", "50.00", 60},
		{"Lavagem Simples", "Lavagem externa", "30.00", 30},
		{"Polimento", "Polimento e cristalização", "150.00", 180},
		{"Enceramento", "Enceramento com cera premium", "80.00", 90},
		{"Higienização Interna", "Limpeza profunda dos estofados", "120.00", 120},
	}
	catalog := map[string]*models.CatalogItem{}
	for _, svc := range services {
		price, _ := decimal.NewFromString(svc.price)
		desc := svc.description
		duration := svc.duration
		item := models.CatalogItem{
			TenantID:        tenant.ID,
			Name:            svc.name,
			Description:     &desc,
			Price:           price,
			DurationMinutes: &duration,
			Active:          true,
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		catalog[svc.name] = &item
	}

	phone := "(11) 98765-4321"
	email := "joao@example.com"
	plate := "ABC-1234"
	model := "Honda Civic 2020"
	client := models.Client{
		TenantID:     tenant.ID,
		Name:         "João Silva",
		Phone:        &phone,
		Email:        &email,
		VehiclePlate: &plate,
		VehicleModel: &model,
	}
	if err := db.Create(&client).Error; err != nil {
		return err
	}

	now := time.Now()
	payment := "Dinheiro"
	order := models.Order{
		TenantID:      tenant.ID,
		ClientID:      &client.ID,
		OrderNumber:   fmt.Sprintf("OS-%d", now.UnixMilli()),
		Status:        models.StatusPaid,
		TotalAmount:   decimal.NewFromInt(80),
		PaymentMethod: &payment,
		PaidAt:        &now,
		CreatedBy:     &user.ID,
	}
	if err := db.Create(&order).Error; err != nil {
		return err
	}
	for _, name := range []string{"Lavagem Completa", "Lavagem Simples"} {
		item := catalog[name]
		if err := db.Create(&models.OrderItem{
			OrderID:       order.ID,
			CatalogItemID: &item.ID,
			ServiceName:   item.Name,
			Price:         item.Price,
			Quantity:      1,
		}).Error; err != nil {
			return err
		}
	}

	log.Info().Str("email", user.Email).Str("username", user.Username).Msg("seed completed, demo password is 123")
	return nil
}
