// Package activity appends and reads the audit trail in activity_logs.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
)

// Entry is a single action to record.
type Entry struct {
	UserID      uuid.UUID
	WarehouseID *uuid.UUID
	Action      string
	Entity      string
	EntityID    string
	OldValues   any
	NewValues   any
	IPAddress   string
	UserAgent   string
}

// ActionCount is the number of rows per action.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Record(ctx context.Context, entry Entry) (*models.ActivityLog, error)
	Recent(ctx context.Context, since time.Time, limit int) ([]models.ActivityLog, error)
	CountByAction(ctx context.Context, since time.Time) ([]ActionCount, error)
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

// Record appends entry. Old and new values are stored as JSON.
func (r *repository) Record(ctx context.Context, entry Entry) (*models.ActivityLog, error) {
	if entry.UserID == uuid.Nil {
		return nil, fmt.Errorf("activity user is required")
	}
	if strings.TrimSpace(entry.Action) == "" || strings.TrimSpace(entry.Entity) == "" {
		return nil, fmt.Errorf("activity action and entity are required")
	}
	oldValues, err := encode(entry.OldValues)
	if err != nil {
		return nil, fmt.Errorf("encode old values: %w", err)
	}
	newValues, err := encode(entry.NewValues)
	if err != nil {
		return nil, fmt.Errorf("encode new values: %w", err)
	}

	row := &models.ActivityLog{
		UserID:      entry.UserID,
		WarehouseID: entry.WarehouseID,
		Action:      strings.ToUpper(entry.Action),
		Entity:      entry.Entity,
		EntityID:    optional(entry.EntityID),
		OldValues:   oldValues,
		NewValues:   newValues,
		IPAddress:   optional(entry.IPAddress),
		UserAgent:   optional(entry.UserAgent),
	}
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Recent returns up to limit rows created at or after since, newest first,
// with the acting user loaded.
func (r *repository) Recent(ctx context.Context, since time.Time, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ActivityLog
	err := r.DB(ctx).
		Preload("User").
		Where("created_at >= ?", since.UTC()).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountByAction(ctx context.Context, since time.Time) ([]ActionCount, error) {
	var rows []ActionCount
	err := r.DB(ctx).Model(&models.ActivityLog{}).
		Select("action, COUNT(*) AS count").
		Where("created_at >= ?", since.UTC()).
		Group("action").
		Order("action ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func encode(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		return &s, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
