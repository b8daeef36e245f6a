package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/enums"
)

type Warehouse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address;not null"`
	City      string    `gorm:"column:city;not null"`
	State     string    `gorm:"column:state;not null"`
	ZipCode   string    `gorm:"column:zip_code;not null"`
	Country   string    `gorm:"column:country;not null"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	Zones     []Zone    `gorm:"foreignKey:WarehouseID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (w *Warehouse) BeforeCreate(*gorm.DB) error {
	assignID(&w.ID)
	return nil
}

type Zone struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID      `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Name        string         `gorm:"column:name;not null"`
	Description *string        `gorm:"column:description"`
	Type        enums.ZoneType `gorm:"column:type;type:text;not null"`
	IsActive    bool           `gorm:"column:is_active;not null"`
	Locations   []Location     `gorm:"foreignKey:ZoneID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (z *Zone) BeforeCreate(*gorm.DB) error {
	assignID(&z.ID)
	return nil
}

type Location struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ZoneID    uuid.UUID          `gorm:"column:zone_id;type:uuid;not null;index"`
	Zone      *Zone              `gorm:"foreignKey:ZoneID"`
	Name      string             `gorm:"column:name;not null"`
	Barcode   string             `gorm:"column:barcode;not null;uniqueIndex"`
	Aisle     *string            `gorm:"column:aisle"`
	Shelf     *string            `gorm:"column:shelf"`
	Bin       *string            `gorm:"column:bin"`
	Type      enums.LocationType `gorm:"column:type;type:text;not null"`
	Capacity  *int               `gorm:"column:capacity"`
	IsActive  bool               `gorm:"column:is_active;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *Location) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

// WarehouseUser assigns a user to a warehouse with a site-level role.
type WarehouseUser struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_warehouse_users_user_warehouse"`
	WarehouseID uuid.UUID  `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_warehouse_users_user_warehouse"`
	Role        enums.Role `gorm:"column:role;type:text;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (wu *WarehouseUser) BeforeCreate(*gorm.DB) error {
	assignID(&wu.ID)
	return nil
}
