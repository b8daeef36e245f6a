package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/activity"
	"github.com/angelmondragon/wms-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), activity.NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func intPtr(v int) *int { return &v }

func TestGrowthAndRounding(t *testing.T) {
	assert.Equal(t, 0.0, growth(5, 0))
	assert.Equal(t, 50.0, growth(3, 2))
	assert.Equal(t, -33.3, growth(2, 3))
	assert.Equal(t, 12.3, round1(12.34))
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, ValidatePeriod(1))
	assert.NoError(t, ValidatePeriod(MaxPeriod))
	assert.True(t, pkgerrors.IsCode(ValidatePeriod(0), pkgerrors.CodeValidation))
	assert.True(t, pkgerrors.IsCode(ValidatePeriod(366), pkgerrors.CodeValidation))
}

func TestMetricsEmptyDatabase(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.Metrics(context.Background(), DefaultPeriod)
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.OrderGrowth)
	assert.True(t, got.Revenue.IsZero())
	assert.Nil(t, got.AvgOrderTime)
	assert.False(t, got.AvgOrderTimeAvailable)
}

func TestMetricsComparesWindows(t *testing.T) {
	svc, conn := newTestService(t)
	site := dbtest.Warehouse(t, conn, "Main")
	user := dbtest.User(t, conn, enums.RoleEmployee)
	product := dbtest.Product(t, conn, "SKU-1", "10.00")
	dbtest.Inventory(t, conn, site, product, 7, 0, 7)

	dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusPending)
	delivered := dbtest.Order(t, conn, site, user, product, 2, enums.OrderStatusDelivered)
	created := time.Now().Add(-5 * time.Hour).UTC()
	dbtest.Backdate(t, conn, &models.Order{}, delivered.ID, created)
	require.NoError(t, conn.Model(&models.Order{}).Where("id = ?", delivered.ID).
		Update("completed_at", created.Add(3*time.Hour)).Error)

	old := dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusPending)
	dbtest.Backdate(t, conn, &models.Order{}, old.ID, time.Now().AddDate(0, 0, -40))

	got, err := svc.Metrics(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TotalOrders)
	assert.Equal(t, 100.0, got.OrderGrowth)
	assert.True(t, decimal.NewFromInt(30).Equal(got.Revenue), got.Revenue.String())
	assert.Equal(t, 200.0, got.RevenueGrowth)
	assert.True(t, decimal.NewFromInt(70).Equal(got.InventoryValue), got.InventoryValue.String())
	require.NotNil(t, got.AvgOrderTime)
	assert.Equal(t, 3.0, *got.AvgOrderTime)
	assert.True(t, got.AvgOrderTimeAvailable)
}

func TestAvgOrderTimeUsesCompletionWindow(t *testing.T) {
	svc, conn := newTestService(t)
	site := dbtest.Warehouse(t, conn, "Main")
	user := dbtest.User(t, conn, enums.RoleEmployee)
	product := dbtest.Product(t, conn, "SKU-1", "5.00")

	longRunning := dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusDelivered)
	const day = 24 * time.Hour
	now := time.Now().UTC()
	created := now.Add(-40 * day)
	dbtest.Backdate(t, conn, &models.Order{}, longRunning.ID, created)
	require.NoError(t, conn.Model(&models.Order{}).Where("id = ?", longRunning.ID).
		Update("completed_at", now.Add(-day)).Error)

	// completed before the window opened
	stale := dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusDelivered)
	dbtest.Backdate(t, conn, &models.Order{}, stale.ID, now.Add(-50 * day))
	require.NoError(t, conn.Model(&models.Order{}).Where("id = ?", stale.ID).
		Update("completed_at", now.Add(-45 * day)).Error)

	got, err := svc.Metrics(context.Background(), 30)
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	require.True(t, got.AvgOrderTimeAvailable)
	require.NotNil(t, got.AvgOrderTime)
	assert.InDelta(t, 39*24.0, *got.AvgOrderTime, 0.5)

	perf, err := svc.WarehousePerformance(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	require.NotNil(t, perf[0].AvgOrderTime)
	assert.InDelta(t, 39*24.0, *perf[0].AvgOrderTime, 0.5)
}

func TestTopProducts(t *testing.T) {
	svc, conn := newTestService(t)
	site := dbtest.Warehouse(t, conn, "Main")
	user := dbtest.User(t, conn, enums.RoleEmployee)
	slow := dbtest.Product(t, conn, "SKU-SLOW", "100.00")
	fast := dbtest.Product(t, conn, "SKU-FAST", "1.00")
	dbtest.Order(t, conn, site, user, slow, 1, enums.OrderStatusPending)
	dbtest.Order(t, conn, site, user, fast, 4, enums.OrderStatusPending)
	dbtest.Order(t, conn, site, user, fast, 3, enums.OrderStatusPending)

	got, err := svc.TopProducts(context.Background(), 30, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SKU-FAST", got[0].SKU)
	assert.Equal(t, int64(7), got[0].UnitsSold)
	assert.True(t, decimal.NewFromInt(7).Equal(got[0].Revenue))

	_, err = svc.TopProducts(context.Background(), 30, 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestWarehousePerformance(t *testing.T) {
	svc, conn := newTestService(t)
	busy := dbtest.Warehouse(t, conn, "Busy")
	dbtest.Warehouse(t, conn, "Idle")
	user := dbtest.User(t, conn, enums.RoleEmployee)
	product := dbtest.Product(t, conn, "SKU-1", "1.00")
	dbtest.Inventory(t, conn, busy, product, 3, 0, 3)
	dbtest.Order(t, conn, busy, user, product, 1, enums.OrderStatusDelivered)
	dbtest.Order(t, conn, busy, user, product, 1, enums.OrderStatusPending)
	dbtest.Order(t, conn, busy, user, product, 1, enums.OrderStatusPending)

	got, err := svc.WarehousePerformance(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Busy", got[0].WarehouseName)
	assert.Equal(t, int64(3), got[0].TotalOrders)
	assert.Equal(t, int64(1), got[0].DeliveredOrders)
	assert.Equal(t, int64(1), got[0].TotalInventoryItems)
	require.NotNil(t, got[0].Efficiency)
	assert.Equal(t, 33.3, *got[0].Efficiency)
	assert.Nil(t, got[0].AvgOrderTime)

	assert.Equal(t, "Idle", got[1].WarehouseName)
	assert.Nil(t, got[1].Efficiency)
}

func TestOrderStatusPercentages(t *testing.T) {
	svc, conn := newTestService(t)
	site := dbtest.Warehouse(t, conn, "Main")
	user := dbtest.User(t, conn, enums.RoleEmployee)
	product := dbtest.Product(t, conn, "SKU-1", "1.00")
	for i := 0; i < 2; i++ {
		dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusPending)
	}
	dbtest.Order(t, conn, site, user, product, 1, enums.OrderStatusShipped)

	got, err := svc.OrderStatus(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Total)
	require.Len(t, got.Statuses, 2)
	assert.Equal(t, StatusCount{Status: enums.OrderStatusPending, Count: 2, Percentage: 66.7}, got.Statuses[0])
	assert.Equal(t, StatusCount{Status: enums.OrderStatusShipped, Count: 1, Percentage: 33.3}, got.Statuses[1])
}

func TestInventoryLevelsFlagsAndOrder(t *testing.T) {
	svc, conn := newTestService(t)
	site := dbtest.Warehouse(t, conn, "Main")
	cheap := dbtest.Inventory(t, conn, site, dbtest.Product(t, conn, "SKU-CHEAP", "1.00"), 5, 0, 5)
	pricey := dbtest.Inventory(t, conn, site, dbtest.Product(t, conn, "SKU-PRICEY", "50.00"), 20, 0, 20)
	require.NoError(t, conn.Model(&models.Inventory{}).Where("id = ?", cheap.ID).Update("min_stock", 5).Error)
	require.NoError(t, conn.Model(&models.Inventory{}).Where("id = ?", pricey.ID).Update("max_stock", 20).Error)

	got, err := svc.InventoryLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "SKU-PRICEY", got[0].SKU)
	assert.True(t, decimal.NewFromInt(1000).Equal(got[0].Value))
	assert.True(t, got[0].IsOverstock)
	assert.False(t, got[0].IsLowStock)
	assert.Equal(t, site.Zone.Name, got[0].ZoneName)

	assert.Equal(t, "SKU-CHEAP", got[1].SKU)
	assert.True(t, got[1].IsLowStock)
	assert.Equal(t, intPtr(5), got[1].MinStock)
}

func TestActivitySummary(t *testing.T) {
	svc, conn := newTestService(t)
	user := dbtest.User(t, conn, enums.RoleSupervisor)
	logs := activity.NewRepository(conn)
	_, err := logs.Record(context.Background(), activity.Entry{UserID: user.ID, Action: models.ActionLogin, Entity: "User"})
	require.NoError(t, err)

	got, err := svc.ActivitySummary(context.Background(), DefaultActivityPeriod)
	require.NoError(t, err)
	require.Len(t, got.Activities, 1)
	require.NotNil(t, got.Activities[0].User)
	assert.Equal(t, enums.RoleSupervisor, got.Activities[0].User.Role)
	assert.Equal(t, []activity.ActionCount{{Action: models.ActionLogin, Count: 1}}, got.Counts)
}
