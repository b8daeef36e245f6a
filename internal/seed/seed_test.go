package seed

import (
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/metrics"
	"github.com/angelmondragon/wms-backend/pkg/security"
)

func newGenerator(t *testing.T) (*Generator, *db.Client, *prometheus.Registry) {
	t.Helper()
	client := dbtest.Client(t)
	reg := prometheus.NewRegistry()
	gen, err := NewGenerator(Params{
		DB:           client,
		Logger:       logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Metrics:      metrics.NewJobMetrics(reg),
		PasswordCost: 4,
	})
	require.NoError(t, err)
	return gen, client, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, job string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "job" && label.GetValue() == job {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestNewGeneratorRequiresDeps(t *testing.T) {
	_, err := NewGenerator(Params{})
	require.Error(t, err)

	_, err = NewGenerator(Params{DB: dbtest.Client(t)})
	require.Error(t, err)
}

func TestSeedCreatesBaselineOnce(t *testing.T) {
	gen, client, reg := newGenerator(t)
	ctx := context.Background()

	res, err := gen.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, res.AlreadySeeded)
	assert.Equal(t, Counts{
		Admin:           AdminEmail,
		TotalUsers:      1,
		TotalWarehouses: 1,
		TotalProducts:   1,
		TotalInventory:  1,
		TotalOrders:     1,
	}, res.Counts)

	var admin models.User
	require.NoError(t, client.DB().Where("email = ?", AdminEmail).First(&admin).Error)
	assert.Equal(t, AdminUsername, admin.Username)
	assert.Equal(t, enums.RoleAdmin, admin.Role)
	ok, err := security.VerifyPassword(AdminPassword, admin.Password)
	require.NoError(t, err)
	assert.True(t, ok)

	var warehouse models.Warehouse
	require.NoError(t, client.DB().First(&warehouse).Error)
	assert.Equal(t, "Main Warehouse", warehouse.Name)

	var order models.Order
	require.NoError(t, client.DB().Preload("Items").First(&order).Error)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.TotalItems)
	assert.Equal(t, "59.98", order.TotalValue.StringFixed(2))

	var logs int64
	require.NoError(t, client.DB().Model(&models.ActivityLog{}).Count(&logs).Error)
	assert.EqualValues(t, 1, logs)

	again, err := gen.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, again.AlreadySeeded)
	assert.Equal(t, res.Counts, again.Counts)

	assert.EqualValues(t, 2, counterValue(t, reg, "wms_job_success_total", jobSeed))
}

func TestForceSeedFillsGapsOnRerun(t *testing.T) {
	gen, client, _ := newGenerator(t)
	ctx := context.Background()

	_, err := gen.Seed(ctx)
	require.NoError(t, err)

	first, err := gen.ForceSeed(ctx)
	require.NoError(t, err)
	assert.Zero(t, first.Failed)
	assert.Zero(t, first.Skipped)
	assert.Equal(t, forceUsers, first.Created["users"])
	assert.Equal(t, forceWarehouses, first.Created["warehouses"])
	assert.Equal(t, forceProducts, first.Created["products"])
	assert.Equal(t, forceOrders, first.Created["orders"])
	assert.EqualValues(t, 51, first.Counts.TotalUsers)
	assert.EqualValues(t, 6, first.Counts.TotalWarehouses)
	assert.EqualValues(t, 51, first.Counts.TotalInventory)
	assert.EqualValues(t, 51, first.Counts.TotalOrders)

	var inactive int64
	require.NoError(t, client.DB().Model(&models.User{}).Where("is_active = ?", false).Count(&inactive).Error)
	assert.EqualValues(t, 5, inactive)

	var managers int64
	require.NoError(t, client.DB().Model(&models.User{}).Where("role = ?", enums.RoleManager).Count(&managers).Error)
	assert.EqualValues(t, 12, managers)

	second, err := gen.ForceSeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, forceUsers+forceWarehouses+forceProducts, second.Skipped)
	assert.Zero(t, second.Created["users"])
	assert.Equal(t, forceOrders, second.Created["orders"])
	assert.EqualValues(t, 51, second.Counts.TotalUsers)
	assert.EqualValues(t, 101, second.Counts.TotalOrders)
}

func TestForceSeedBackdatesOrdersWithinWindow(t *testing.T) {
	gen, client, _ := newGenerator(t)
	ctx := context.Background()

	_, err := gen.ForceSeed(ctx)
	require.NoError(t, err)

	var orders []models.Order
	require.NoError(t, client.DB().Find(&orders).Error)
	require.Len(t, orders, forceOrders)

	earliest := gen.now().AddDate(0, 0, -forceOrderDays-1)
	for _, order := range orders {
		assert.True(t, order.CreatedAt.After(earliest), "order %s created too early", order.OrderNumber)
		if order.Status == enums.OrderStatusDelivered {
			require.NotNil(t, order.CompletedAt)
			assert.True(t, order.CompletedAt.After(order.CreatedAt))
		}
	}
}

func TestSeedMoreRequiresSeededDatabase(t *testing.T) {
	gen, _, reg := newGenerator(t)

	_, err := gen.SeedMore(context.Background(), MoreOptions{Count: 2})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.EqualValues(t, 1, counterValue(t, reg, "wms_job_failure_total", jobSeedMore))
}

func TestSeedMoreAddsBatch(t *testing.T) {
	gen, client, _ := newGenerator(t)
	ctx := context.Background()

	_, err := gen.Seed(ctx)
	require.NoError(t, err)

	res, err := gen.SeedMore(ctx, MoreOptions{Count: 3})
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	assert.Equal(t, map[string]int{"products": 3, "inventory": 3, "orders": 3, "activities": 3}, res.Created)
	assert.EqualValues(t, 4, res.Counts.TotalProducts)
	assert.EqualValues(t, 4, res.Counts.TotalOrders)

	var logs int64
	require.NoError(t, client.DB().Model(&models.ActivityLog{}).Count(&logs).Error)
	assert.EqualValues(t, 4, logs)

	again, err := gen.SeedMore(ctx, MoreOptions{Count: 3})
	require.NoError(t, err)
	assert.Zero(t, again.Failed)
	assert.EqualValues(t, 7, again.Counts.TotalProducts)
}

func TestMoreOptionsCount(t *testing.T) {
	n, err := MoreOptions{}.count()
	require.NoError(t, err)
	assert.Equal(t, DefaultMoreCount, n)

	n, err = MoreOptions{Count: 10}.count()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	for _, bad := range []int{-1, MaxMoreCount + 1} {
		_, err := MoreOptions{Count: bad}.count()
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	}
}
