package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

type fixture struct {
	svc     Service
	conn    *gorm.DB
	site    dbtest.Site
	user    models.User
	product models.Product
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	client := dbtest.Client(t)
	conn := client.DB()
	svc, err := NewService(NewRepository(conn), client)
	require.NoError(t, err)
	return fixture{
		svc:     svc,
		conn:    conn,
		site:    dbtest.Warehouse(t, conn, "Main"),
		user:    dbtest.User(t, conn, enums.RoleEmployee),
		product: dbtest.Product(t, conn, "SKU-100", "12.50"),
	}
}

func TestNewServiceValidatesDeps(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
	_, err = NewService(NewRepository(dbtest.Open(t)), nil)
	require.Error(t, err)
}

func TestNewOrderNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	number := NewOrderNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20250309-[A-Z2-7]{6}$`), number)
	assert.NotEqual(t, number, NewOrderNumber(at))
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture(t)
	other := dbtest.Product(t, f.conn, "SKU-200", "3.00")

	got, err := f.svc.Create(context.Background(), CreateInput{
		WarehouseID:  f.site.Warehouse.ID,
		CustomerName: "Acme",
		CreatedByID:  f.user.ID,
		Items: []CreateItemInput{
			{ProductID: f.product.ID, Quantity: 2},
			{ProductID: other.ID, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
	assert.Equal(t, enums.OrderPriorityNormal, got.Priority)
	assert.Equal(t, enums.OrderTypeOutbound, got.Type)
	assert.Equal(t, 7, got.TotalItems)
	assert.True(t, decimal.RequireFromString("40.00").Equal(got.TotalValue), got.TotalValue.String())
	assert.Equal(t, "Main", got.Warehouse)
	require.Len(t, got.Items, 2)

	var items []models.OrderItem
	require.NoError(t, f.conn.Where("order_id = ?", got.ID).Find(&items).Error)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.True(t, item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Equal(item.TotalPrice))
	}

	var stored models.Order
	require.NoError(t, f.conn.First(&stored, "id = ?", got.ID).Error)
	assert.Equal(t, f.user.ID, stored.CreatedByID)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	base := func() CreateInput {
		return CreateInput{
			WarehouseID:  f.site.Warehouse.ID,
			CustomerName: "Acme",
			CreatedByID:  f.user.ID,
			Items:        []CreateItemInput{{ProductID: f.product.ID, Quantity: 1}},
		}
	}

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{name: "no items", mutate: func(in *CreateInput) { in.Items = nil }},
		{name: "zero quantity", mutate: func(in *CreateInput) { in.Items[0].Quantity = 0 }},
		{name: "unknown product", mutate: func(in *CreateInput) { in.Items[0].ProductID = uuid.New() }},
		{name: "unknown warehouse", mutate: func(in *CreateInput) { in.WarehouseID = uuid.New() }},
		{name: "unknown assignee", mutate: func(in *CreateInput) { id := uuid.New(); in.AssignedToID = &id }},
		{name: "missing customer", mutate: func(in *CreateInput) { in.CustomerName = " " }},
		{name: "bad priority", mutate: func(in *CreateInput) { in.Priority = "ASAP" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base()
			tc.mutate(&input)
			_, err := f.svc.Create(context.Background(), input)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, f.conn.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	older := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusPending)
	dbtest.Backdate(t, f.conn, &models.Order{}, older.ID, time.Now().Add(-48*time.Hour))
	newer := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusPending)

	out, err := f.svc.List(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, out.Orders, 2)
	assert.Equal(t, newer.ID, out.Orders[0].ID)
	assert.Equal(t, older.ID, out.Orders[1].ID)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, out.Orders[0].CreatedAt)
	assert.Nil(t, out.Orders[0].AssignedTo)
}

func TestUpdateAssignsAndStampsCompletion(t *testing.T) {
	f := newFixture(t)
	order := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusShipped)
	picker := dbtest.User(t, f.conn, enums.RoleSupervisor)

	got, err := f.svc.Update(context.Background(), order.ID, UpdateInput{
		Status:       "delivered",
		Priority:     "HIGH",
		AssignedToID: &picker.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, got.Status)
	assert.Equal(t, enums.OrderPriorityHigh, got.Priority)
	require.NotNil(t, got.AssignedTo)
	assert.Equal(t, picker.FullName(), *got.AssignedTo)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "Acme Corp", *got.CustomerName)

	got, err = f.svc.Update(context.Background(), order.ID, UpdateInput{Status: "SHIPPED", Priority: "HIGH"})
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)
	require.NotNil(t, got.AssignedToID)
	assert.Equal(t, picker.ID, *got.AssignedToID)

	got, err = f.svc.Update(context.Background(), order.ID, UpdateInput{Status: "SHIPPED", Priority: "HIGH", ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, got.AssignedToID)
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture(t)
	order := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusPending)
	ghost := uuid.New()

	cases := []struct {
		name  string
		input UpdateInput
		msg   string
	}{
		{name: "status", input: UpdateInput{Status: "LOST", Priority: "LOW"}, msg: invalidStatusMessage},
		{name: "priority", input: UpdateInput{Status: "PENDING", Priority: "MEH"}, msg: invalidPriorityMessage},
		{name: "assignee", input: UpdateInput{Status: "PENDING", Priority: "LOW", AssignedToID: &ghost}, msg: assigneeNotFoundMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Update(context.Background(), order.ID, tc.input)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Equal(t, tc.msg, typed.Message())
		})
	}
}

func TestDeleteOnlyPending(t *testing.T) {
	f := newFixture(t)
	shipped := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusShipped)
	pending := dbtest.Order(t, f.conn, f.site, f.user, f.product, 1, enums.OrderStatusPending)

	err := f.svc.Delete(context.Background(), shipped.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, onlyPendingDeleteMessage, typed.Message())

	require.NoError(t, f.svc.Delete(context.Background(), pending.ID))
	var items int64
	require.NoError(t, f.conn.Model(&models.OrderItem{}).Where("order_id = ?", pending.ID).Count(&items).Error)
	assert.Zero(t, items)

	_, err = f.svc.Get(context.Background(), pending.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = f.svc.Get(context.Background(), shipped.ID)
	assert.NoError(t, err)
}

type failingRepo struct {
	Repository
}

func (failingRepo) List(context.Context, pagination.Params) ([]models.Order, int64, error) {
	return nil, 0, errors.New("connection reset")
}

func TestListRepoFailureIsInternal(t *testing.T) {
	svc, err := NewService(failingRepo{}, dbtest.Client(t))
	require.NoError(t, err)
	_, err = svc.List(context.Background(), pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}
