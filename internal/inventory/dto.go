package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const (
	StatusLowStock = "Low Stock"
	StatusInStock  = "In Stock"

	// defaultMinStock applies when a row has no minimum configured.
	defaultMinStock = 10
)

type ProductSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	SKU      string    `json:"sku"`
	Category *string   `json:"category"`
}

// ItemDTO is the dashboard row for one inventory record.
type ItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	Product     ProductSummary `json:"product"`
	Location    string         `json:"location"`
	Zone        string         `json:"zone"`
	Warehouse   string         `json:"warehouse"`
	Quantity    int            `json:"quantity"`
	Available   int            `json:"available"`
	Reserved    int            `json:"reserved"`
	MinStock    *int           `json:"minStock"`
	MaxStock    *int           `json:"maxStock"`
	Status      string         `json:"status"`
	LastCountAt *time.Time     `json:"lastCountAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ItemList struct {
	Inventory  []ItemDTO       `json:"inventory"`
	Pagination pagination.Meta `json:"pagination"`
}

// UpdateInput overwrites the stock figures. Nil MinStock/MaxStock keep the
// stored values.
type UpdateInput struct {
	Quantity     int
	AvailableQty int
	ReservedQty  int
	MinStock     *int
	MaxStock     *int
}

// StockStatus labels a row "Low Stock" when quantity is at or below the
// minimum, falling back to defaultMinStock when none is set.
func StockStatus(quantity int, minStock *int) string {
	threshold := defaultMinStock
	if minStock != nil && *minStock > 0 {
		threshold = *minStock
	}
	if quantity <= threshold {
		return StatusLowStock
	}
	return StatusInStock
}

func FromModel(row *models.Inventory) *ItemDTO {
	if row == nil {
		return nil
	}
	out := &ItemDTO{
		ID:          row.ID,
		Quantity:    row.Quantity,
		Available:   row.AvailableQty,
		Reserved:    row.ReservedQty,
		MinStock:    row.MinStock,
		MaxStock:    row.MaxStock,
		Status:      StockStatus(row.Quantity, row.MinStock),
		LastCountAt: row.LastCountAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if p := row.Product; p != nil {
		out.Product = ProductSummary{ID: p.ID, Name: p.Name, SKU: p.SKU, Category: p.Category}
	}
	if l := row.Location; l != nil {
		out.Location = l.Name
		if l.Zone != nil {
			out.Zone = l.Zone.Name
		}
	}
	if w := row.Warehouse; w != nil {
		out.Warehouse = w.Name
	}
	return out
}
