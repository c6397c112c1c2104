package catalog

import (
	"context"
	"testing"

	"lavajato-backend/internal/models"
	"lavajato-backend/internal/pkg/apperr"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*Service, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{}, &models.CatalogItem{}, &models.Order{}, &models.OrderItem{}, &models.AuditLog{},
	))

	tenant := &models.Tenant{Name: "Test Wash", Slug: "test-wash"}
	require.NoError(t, db.Create(tenant).Error)

	return &Service{DB: db}, db, tenant.ID
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateCatalogItem(t *testing.T) {
	svc, _, tenantID := setupCatalogTest(t)

	item, err := svc.Create(context.Background(), tenantID, nil, CreateInput{
		Name:  "Lavagem Completa",
		Price: price("50.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lavagem Completa", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, item.Active)
}

func TestCreateCatalogItem_MissingFields(t *testing.T) {
	svc, _, tenantID := setupCatalogTest(t)

	_, err := svc.Create(context.Background(), tenantID, nil, CreateInput{Price: price("50")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), tenantID, nil, CreateInput{Name: "Polimento"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Name and price are required", err.Error())
}

func TestCreateCatalogItem_NegativePrice(t *testing.T) {
	svc, _, tenantID := setupCatalogTest(t)

	_, err := svc.Create(context.Background(), tenantID, nil, CreateInput{
		Name:  "Polimento",
		Price: price("-1"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateCatalogItem_ZeroPriceAllowed(t *testing.T) {
	svc, _, tenantID := setupCatalogTest(t)

	item, err := svc.Create(context.Background(), tenantID, nil, CreateInput{
		Name:  "Cortesia",
		Price: price("0"),
	})
	require.NoError(t, err)
	assert.True(t, item.Price.IsZero())
}

func TestListCatalog_AlphabeticalAndScoped(t *testing.T) {
	svc, db, tenantID := setupCatalogTest(t)

	other := &models.Tenant{Name: "Other Wash", Slug: "other-wash"}
	require.NoError(t, db.Create(other).Error)

	for _, name := range []string{"Polimento", "Enceramento", "Lavagem Completa"} {
		_, err := svc.Create(context.Background(), tenantID, nil, CreateInput{Name: name, Price: price("10")})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), other.ID, nil, CreateInput{Name: "Alheio", Price: price("10")})
	require.NoError(t, err)

	list, err := svc.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Enceramento", list[0].Name)
	assert.Equal(t, "Lavagem Completa", list[1].Name)
	assert.Equal(t, "Polimento", list[2].Name)
}

func TestDeleteCatalogItem(t *testing.T) {
	svc, _, tenantID := setupCatalogTest(t)

	item, err := svc.Create(context.Background(), tenantID, nil, CreateInput{Name: "Polimento", Price: price("150")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), tenantID, item.ID, nil))

	err = svc.Delete(context.Background(), tenantID, item.ID, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Service not found", err.Error())
}

// Deleting a catalog item never rewrites past orders: items keep their
// snapshotted name and price.
func TestDeleteCatalogItem_KeepsOrderSnapshots(t *testing.T) {
	svc, db, tenantID := setupCatalogTest(t)

	item, err := svc.Create(context.Background(), tenantID, nil, CreateInput{Name: "Polimento", Price: price("150.00")})
	require.NoError(t, err)

	order := &models.Order{
		TenantID:    tenantID,
		OrderNumber: "OS-1",
		Status:      models.StatusCompleted,
		TotalAmount: decimal.RequireFromString("150.00"),
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:       order.ID,
		CatalogItemID: &item.ID,
		ServiceName:   item.Name,
		Price:         item.Price,
		Quantity:      1,
	}).Error)

	require.NoError(t, svc.Delete(context.Background(), tenantID, item.ID, nil))

	var snapshot models.OrderItem
	require.NoError(t, db.First(&snapshot, "order_id = ?", order.ID).Error)
	assert.Equal(t, "Polimento", snapshot.ServiceName)
	assert.True(t, snapshot.Price.Equal(decimal.RequireFromString("150.00")))
}
