package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
)

// Site is a warehouse with one zone and one location.
type Site struct {
	Warehouse models.Warehouse
	Zone      models.Zone
	Location  models.Location
}

func mustCreate(t *testing.T, conn *gorm.DB, value any) {
	t.Helper()
	if err := conn.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func suffix() string {
	return uuid.NewString()[:8]
}

// User inserts an active user with the given role and a unique email.
func User(t *testing.T, conn *gorm.DB, role enums.Role) models.User {
	t.Helper()
	s := suffix()
	user := models.User{
		Email:     fmt.Sprintf("user-%s@example.com", s),
		Username:  "user-" + s,
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		IsActive:  true,
	}
	mustCreate(t, conn, &user)
	return user
}

// Warehouse inserts a warehouse together with one storage zone and one shelf.
func Warehouse(t *testing.T, conn *gorm.DB, name string) Site {
	t.Helper()
	site := Site{
		Warehouse: models.Warehouse{
			Name:     name,
			Address:  "1 Dock Rd",
			City:     "Reno",
			State:    "NV",
			ZipCode:  "89501",
			Country:  "US",
			IsActive: true,
		},
	}
	mustCreate(t, conn, &site.Warehouse)

	site.Zone = models.Zone{
		WarehouseID: site.Warehouse.ID,
		Name:        "Zone A",
		Type:        enums.ZoneTypeStorage,
		IsActive:    true,
	}
	mustCreate(t, conn, &site.Zone)

	site.Location = models.Location{
		ZoneID:   site.Zone.ID,
		Name:     "A-01-01",
		Barcode:  "LOC-" + suffix(),
		Type:     enums.LocationTypeShelf,
		IsActive: true,
	}
	mustCreate(t, conn, &site.Location)
	return site
}

// Product inserts an active product priced at price.
func Product(t *testing.T, conn *gorm.DB, sku string, price string) models.Product {
	t.Helper()
	category := "General"
	product := models.Product{
		SKU:       sku,
		Name:      "Product " + sku,
		Category:  &category,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  true,
	}
	mustCreate(t, conn, &product)
	return product
}

// Inventory inserts a stock row for product at the site's location.
func Inventory(t *testing.T, conn *gorm.DB, site Site, product models.Product, quantity, reserved, available int) models.Inventory {
	t.Helper()
	row := models.Inventory{
		ProductID:    product.ID,
		WarehouseID:  site.Warehouse.ID,
		LocationID:   site.Location.ID,
		Quantity:     quantity,
		ReservedQty:  reserved,
		AvailableQty: available,
	}
	mustCreate(t, conn, &row)
	return row
}

// Order inserts an order with a single item for product.
func Order(t *testing.T, conn *gorm.DB, site Site, creator models.User, product models.Product, quantity int, status enums.OrderStatus) models.Order {
	t.Helper()
	total := product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	customer := "Acme Corp"
	order := models.Order{
		OrderNumber:  "ORD-TEST-" + suffix(),
		Type:         enums.OrderTypeOutbound,
		WarehouseID:  site.Warehouse.ID,
		CustomerName: &customer,
		Status:       status,
		Priority:     enums.OrderPriorityNormal,
		TotalItems:   quantity,
		TotalValue:   total,
		CreatedByID:  creator.ID,
		Items: []models.OrderItem{{
			ProductID:  product.ID,
			Quantity:   quantity,
			UnitPrice:  product.UnitPrice,
			TotalPrice: total,
		}},
	}
	mustCreate(t, conn, &order)
	return order
}

// Backdate rewrites created_at on the row identified by id.
func Backdate(t *testing.T, conn *gorm.DB, model any, id uuid.UUID, at time.Time) {
	t.Helper()
	if err := conn.Model(model).Where("id = ?", id).UpdateColumn("created_at", at.UTC()).Error; err != nil {
		t.Fatalf("backdate %T: %v", model, err)
	}
}
