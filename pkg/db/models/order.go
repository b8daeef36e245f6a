package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/enums"
)

type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OrderNumber     string              `gorm:"column:order_number;not null;uniqueIndex"`
	Type            enums.OrderType     `gorm:"column:type;type:text;not null"`
	WarehouseID     uuid.UUID           `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Warehouse       *Warehouse          `gorm:"foreignKey:WarehouseID"`
	CustomerName    *string             `gorm:"column:customer_name"`
	CustomerEmail   *string             `gorm:"column:customer_email"`
	ShippingAddress *string             `gorm:"column:shipping_address"`
	Notes           *string             `gorm:"column:notes"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;index"`
	Priority        enums.OrderPriority `gorm:"column:priority;type:text;not null"`
	TotalItems      int                 `gorm:"column:total_items;not null"`
	TotalValue      decimal.Decimal     `gorm:"column:total_value;type:numeric(12,2);not null"`
	CreatedByID     uuid.UUID           `gorm:"column:created_by_id;type:uuid;not null;index"`
	CreatedBy       *User               `gorm:"foreignKey:CreatedByID"`
	AssignedToID    *uuid.UUID          `gorm:"column:assigned_to_id;type:uuid;index"`
	AssignedTo      *User               `gorm:"foreignKey:AssignedToID"`
	CompletedAt     *time.Time          `gorm:"column:completed_at"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Product    *Product        `gorm:"foreignKey:ProductID"`
	Quantity   int             `gorm:"column:quantity;not null"`
	PickedQty  int             `gorm:"column:picked_qty;not null"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	Notes      *string         `gorm:"column:notes"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (oi *OrderItem) BeforeCreate(*gorm.DB) error {
	assignID(&oi.ID)
	return nil
}
