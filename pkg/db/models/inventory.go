package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inventory is the stock of one product at one warehouse location.
// AvailableQty + ReservedQty must not exceed Quantity; the check lives in the
// inventory service because rows created by imports are not validated.
type Inventory struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	Product      *Product   `gorm:"foreignKey:ProductID"`
	WarehouseID  uuid.UUID  `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Warehouse    *Warehouse `gorm:"foreignKey:WarehouseID"`
	LocationID   uuid.UUID  `gorm:"column:location_id;type:uuid;not null;index"`
	Location     *Location  `gorm:"foreignKey:LocationID"`
	Quantity     int        `gorm:"column:quantity;not null"`
	ReservedQty  int        `gorm:"column:reserved_qty;not null"`
	AvailableQty int        `gorm:"column:available_qty;not null"`
	MinStock     *int       `gorm:"column:min_stock"`
	MaxStock     *int       `gorm:"column:max_stock"`
	LastCountAt  *time.Time `gorm:"column:last_count_at"`
	CreatedByID  *uuid.UUID `gorm:"column:created_by_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string {
	return "inventory"
}

func (i *Inventory) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}
