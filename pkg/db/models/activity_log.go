package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit row. OldValues/NewValues carry JSON
// snapshots of the entity before and after the action.
type ActivityLog struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	User        *User      `gorm:"foreignKey:UserID"`
	WarehouseID *uuid.UUID `gorm:"column:warehouse_id;type:uuid"`
	Action      string     `gorm:"column:action;not null;index"`
	Entity      string     `gorm:"column:entity;not null"`
	EntityID    *string    `gorm:"column:entity_id"`
	OldValues   *string    `gorm:"column:old_values;type:jsonb"`
	NewValues   *string    `gorm:"column:new_values;type:jsonb"`
	IPAddress   *string    `gorm:"column:ip_address"`
	UserAgent   *string    `gorm:"column:user_agent"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index"`
}

func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// Activity actions written by the platform.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
	ActionPick   = "PICK"
	ActionCount  = "COUNT"
)
