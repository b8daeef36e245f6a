package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/config"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&testModel{}))
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := Wrap(db)

	ctx := context.Background()
	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}))

	var count int64
	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "rollback should leave a single row")
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)
	client := Wrap(db)

	assert.Panics(t, func() {
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			require.NoError(t, tx.Create(&testModel{Name: "panicked"}).Error)
			panic("boom")
		})
	})

	var count int64
	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPing(t *testing.T) {
	client := Wrap(newTestDB(t))
	assert.NoError(t, client.Ping(context.Background()))
}

func TestNew_SQLiteAutoMigrates(t *testing.T) {
	path := t.TempDir() + "/wms.db"
	client, err := New(context.Background(), config.DBConfig{SQLitePath: path}, config.FeatureFlagsConfig{UseSQLite: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.True(t, client.DB().Migrator().HasTable("inventory"))
	assert.True(t, client.DB().Migrator().HasTable("activity_logs"))
}

func TestNew_RequiresDSNForPostgres(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, config.FeatureFlagsConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&testModel{Name: "dup"}).Error)
	sqliteErr := db.Create(&testModel{Name: "dup"}).Error
	require.Error(t, sqliteErr)

	cases := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sqlite", err: sqliteErr, want: true},
		{name: "pgx", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, want: true},
		{name: "pgx constraint match", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, constraint: "users_email_key", want: true},
		{name: "pgx constraint mismatch", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, constraint: "users_username_key", want: false},
		{name: "pgx other code", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "lib/pq", err: &pq.Error{Code: "23505", Constraint: "products_sku_key"}, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "plain", err: errors.New("connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err, tc.constraint))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
}
