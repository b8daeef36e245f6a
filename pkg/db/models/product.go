package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SKU         string           `gorm:"column:sku;not null;uniqueIndex"`
	Barcode     *string          `gorm:"column:barcode;uniqueIndex"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	Category    *string          `gorm:"column:category"`
	Brand       *string          `gorm:"column:brand"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Weight      *decimal.Decimal `gorm:"column:weight;type:numeric(10,3)"`
	Dimensions  *string          `gorm:"column:dimensions"`
	IsActive    bool             `gorm:"column:is_active;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
