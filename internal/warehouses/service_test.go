package warehouses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.Client(t)
	svc, err := NewService(client, NewRepository(client.DB()))
	require.NoError(t, err)
	return svc, client
}

func validInput(name string) WarehouseInput {
	return WarehouseInput{
		Name:    name,
		Address: "10 Harbor Way",
		City:    "Oakland",
		State:   "CA",
		ZipCode: "94607",
	}
}

func TestCreateDefaultsCountryAndActive(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Create(context.Background(), validInput("  West  "))
	require.NoError(t, err)
	assert.Equal(t, "West", got.Name)
	assert.Equal(t, "US", got.Country)
	assert.True(t, got.IsActive)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.NotNil(t, got.Zones)
}

func TestCreateRequiresAddressFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), WarehouseInput{Name: "West"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "zipCode")
	assert.NotContains(t, details, "name")
}

func TestListActiveByNameWithCounts(t *testing.T) {
	svc, client := newTestService(t)
	conn := client.DB()
	beta := dbtest.Warehouse(t, conn, "Beta")
	dbtest.Warehouse(t, conn, "Alpha")
	closed := dbtest.Warehouse(t, conn, "Closed")
	require.NoError(t, conn.Model(&models.Warehouse{}).Where("id = ?", closed.Warehouse.ID).Update("is_active", false).Error)

	user := dbtest.User(t, conn, enums.RoleEmployee)
	product := dbtest.Product(t, conn, "SKU-W1", "2.00")
	dbtest.Inventory(t, conn, beta, product, 5, 0, 5)
	dbtest.Order(t, conn, beta, user, product, 1, enums.OrderStatusPending)

	out, err := svc.List(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, out.Warehouses, 2)
	assert.Equal(t, "Alpha", out.Warehouses[0].Name)
	assert.Equal(t, "Beta", out.Warehouses[1].Name)
	assert.Equal(t, int64(2), out.Pagination.Total)

	counts := out.Warehouses[1].Count
	require.NotNil(t, counts)
	assert.Equal(t, Counts{Zones: 1, Inventory: 1, Orders: 1}, *counts)
	require.Len(t, out.Warehouses[1].Zones, 1)
	assert.Len(t, out.Warehouses[1].Zones[0].Locations, 1)
}

func TestGet(t *testing.T) {
	svc, client := newTestService(t)
	site := dbtest.Warehouse(t, client.DB(), "Main")

	got, err := svc.Get(context.Background(), site.Warehouse.ID)
	require.NoError(t, err)
	require.Len(t, got.Zones, 1)
	assert.Equal(t, site.Location.Barcode, got.Zones[0].Locations[0].Barcode)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateKeepsCountryWhenOmitted(t *testing.T) {
	svc, client := newTestService(t)
	site := dbtest.Warehouse(t, client.DB(), "Main")
	inactive := false

	input := validInput("Main Renamed")
	input.IsActive = &inactive
	got, err := svc.Update(context.Background(), site.Warehouse.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Main Renamed", got.Name)
	assert.Equal(t, "US", got.Country)
	assert.False(t, got.IsActive)

	var zones int64
	require.NoError(t, client.DB().Model(&models.Zone{}).Where("warehouse_id = ?", site.Warehouse.ID).Count(&zones).Error)
	assert.Equal(t, int64(1), zones)
}

func TestDeleteRemovesLayout(t *testing.T) {
	svc, client := newTestService(t)
	site := dbtest.Warehouse(t, client.DB(), "Empty")

	require.NoError(t, svc.Delete(context.Background(), site.Warehouse.ID))

	var n int64
	require.NoError(t, client.DB().Model(&models.Location{}).Where("id = ?", site.Location.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, client.DB().Model(&models.Zone{}).Where("id = ?", site.Zone.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteBlockedByInventory(t *testing.T) {
	svc, client := newTestService(t)
	conn := client.DB()
	site := dbtest.Warehouse(t, conn, "Stocked")
	dbtest.Inventory(t, conn, site, dbtest.Product(t, conn, "SKU-W2", "1.00"), 1, 0, 1)

	err := svc.Delete(context.Background(), site.Warehouse.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = svc.Get(context.Background(), site.Warehouse.ID)
	assert.NoError(t, err)
}
