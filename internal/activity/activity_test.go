package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/wms-backend/pkg/db/dbtest"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
)

func TestRecordEncodesValues(t *testing.T) {
	conn := dbtest.Open(t)
	user := dbtest.User(t, conn, enums.RoleEmployee)
	r := NewRepository(conn)

	row, err := r.Record(context.Background(), Entry{
		UserID:    user.ID,
		Action:    "update",
		Entity:    "Inventory",
		EntityID:  "abc",
		OldValues: map[string]int{"quantity": 5},
		NewValues: map[string]int{"quantity": 7},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ActionUpdate, row.Action)
	require.NotNil(t, row.NewValues)
	assert.JSONEq(t, `{"quantity":7}`, *row.NewValues)
	assert.Nil(t, row.IPAddress)
}

func TestRecordRequiresUserAndAction(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	_, err := r.Record(context.Background(), Entry{Action: "CREATE", Entity: "Order"})
	require.Error(t, err)
	_, err = r.Record(context.Background(), Entry{UserID: uuid.New(), Entity: "Order"})
	require.Error(t, err)
}

func TestRecentAndCounts(t *testing.T) {
	conn := dbtest.Open(t)
	user := dbtest.User(t, conn, enums.RoleManager)
	r := NewRepository(conn)
	ctx := context.Background()

	for _, action := range []string{models.ActionCreate, models.ActionCreate, models.ActionPick} {
		_, err := r.Record(ctx, Entry{UserID: user.ID, Action: action, Entity: "Order"})
		require.NoError(t, err)
	}
	old, err := r.Record(ctx, Entry{UserID: user.ID, Action: models.ActionDelete, Entity: "Order"})
	require.NoError(t, err)
	dbtest.Backdate(t, conn, &models.ActivityLog{}, old.ID, time.Now().AddDate(0, 0, -30))

	since := time.Now().AddDate(0, 0, -7)
	recent, err := r.Recent(ctx, since, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.NotNil(t, recent[0].User)
	assert.Equal(t, enums.RoleManager, recent[0].User.Role)

	counts, err := r.CountByAction(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, []ActionCount{
		{Action: models.ActionCreate, Count: 2},
		{Action: models.ActionPick, Count: 1},
	}, counts)
}
