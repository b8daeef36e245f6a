package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const listDateLayout = "2006-01-02"

// OrderSummary is the list row shown on the orders table.
type OrderSummary struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	CustomerName *string             `json:"customerName"`
	Status       enums.OrderStatus   `json:"status"`
	Priority     enums.OrderPriority `json:"priority"`
	TotalItems   int                 `json:"totalItems"`
	TotalValue   decimal.Decimal     `json:"totalValue"`
	CreatedAt    string              `json:"createdAt"`
	AssignedTo   *string             `json:"assignedTo"`
	Warehouse    string              `json:"warehouse"`
}

type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	PickedQty   int             `json:"pickedQty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OrderDetail extends the summary with customer fields and line items.
type OrderDetail struct {
	OrderSummary
	Type            enums.OrderType `json:"type"`
	CustomerEmail   *string         `json:"customerEmail"`
	ShippingAddress *string         `json:"shippingAddress"`
	Notes           *string         `json:"notes"`
	AssignedToID    *uuid.UUID      `json:"assignedToId"`
	CompletedAt     *time.Time      `json:"completedAt"`
	Items           []ItemDTO       `json:"items"`
}

type OrderList struct {
	Orders     []OrderSummary  `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}

// CreateItemInput is one requested line; the unit price comes from the product.
type CreateItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Notes     *string
}

type CreateInput struct {
	WarehouseID     uuid.UUID
	Type            string
	Priority        string
	CustomerName    string
	CustomerEmail   *string
	ShippingAddress *string
	Notes           *string
	AssignedToID    *uuid.UUID
	CreatedByID     uuid.UUID
	Items           []CreateItemInput
}

// UpdateInput carries the editable order fields. A nil AssignedToID keeps the
// current assignee unless ClearAssignee is set; a nil CustomerName keeps the
// stored name.
type UpdateInput struct {
	Status        string
	Priority      string
	AssignedToID  *uuid.UUID
	ClearAssignee bool
	CustomerName  *string
}

func summaryFromModel(o *models.Order) OrderSummary {
	out := OrderSummary{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Priority:     o.Priority,
		TotalItems:   o.TotalItems,
		TotalValue:   o.TotalValue,
		CreatedAt:    o.CreatedAt.UTC().Format(listDateLayout),
	}
	if o.AssignedTo != nil {
		name := o.AssignedTo.FullName()
		out.AssignedTo = &name
	}
	if o.Warehouse != nil {
		out.Warehouse = o.Warehouse.Name
	}
	return out
}

func detailFromModel(o *models.Order) *OrderDetail {
	out := &OrderDetail{
		OrderSummary:    summaryFromModel(o),
		Type:            o.Type,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		AssignedToID:    o.AssignedToID,
		CompletedAt:     o.CompletedAt,
		Items:           make([]ItemDTO, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		dto := ItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PickedQty:  item.PickedQty,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		if item.Product != nil {
			dto.ProductName = item.Product.Name
			dto.SKU = item.Product.SKU
		}
		out.Items = append(out.Items, dto)
	}
	return out
}
