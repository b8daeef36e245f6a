package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wms-backend/internal/activity"
	"github.com/angelmondragon/wms-backend/pkg/enums"
)

// Metrics compares the current window with the one before it.
type Metrics struct {
	Period                int             `json:"period"`
	TotalOrders           int64           `json:"totalOrders"`
	OrderGrowth           float64         `json:"orderGrowth"`
	Revenue               decimal.Decimal `json:"revenue"`
	RevenueGrowth         float64         `json:"revenueGrowth"`
	InventoryValue        decimal.Decimal `json:"inventoryValue"`
	AvgOrderTime          *float64        `json:"avgOrderTime"`
	AvgOrderTimeAvailable bool            `json:"avgOrderTimeAvailable"`
}

type TopProduct struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	SKU         string          `json:"sku"`
	UnitsSold   int64           `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type WarehousePerformance struct {
	WarehouseID         uuid.UUID `json:"warehouseId"`
	WarehouseName       string    `json:"warehouseName"`
	TotalOrders         int64     `json:"totalOrders"`
	DeliveredOrders     int64     `json:"deliveredOrders"`
	TotalInventoryItems int64     `json:"totalInventoryItems"`
	Efficiency          *float64  `json:"efficiency"`
	AvgOrderTime        *float64  `json:"avgOrderTime"`
}

type StatusCount struct {
	Status     enums.OrderStatus `json:"status"`
	Count      int64             `json:"count"`
	Percentage float64           `json:"percentage"`
}

type OrderStatusBreakdown struct {
	Period   int           `json:"period"`
	Total    int64         `json:"total"`
	Statuses []StatusCount `json:"statuses"`
}

type InventoryLevel struct {
	ProductID     uuid.UUID       `json:"productId"`
	ProductName   string          `json:"productName"`
	SKU           string          `json:"sku"`
	WarehouseName string          `json:"warehouseName"`
	LocationName  string          `json:"locationName"`
	ZoneName      string          `json:"zoneName"`
	Quantity      int             `json:"quantity"`
	AvailableQty  int             `json:"availableQty"`
	ReservedQty   int             `json:"reservedQty"`
	MinStock      *int            `json:"minStock"`
	MaxStock      *int            `json:"maxStock"`
	IsLowStock    bool            `json:"isLowStock"`
	IsOverstock   bool            `json:"isOverstock"`
	Value         decimal.Decimal `json:"value"`
}

type ActivityUser struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      enums.Role `json:"role"`
}

type ActivityItem struct {
	ID        uuid.UUID     `json:"id"`
	Action    string        `json:"action"`
	Entity    string        `json:"entity"`
	EntityID  *string       `json:"entityId"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *ActivityUser `json:"user"`
}

type ActivitySummary struct {
	Period     int                    `json:"period"`
	Activities []ActivityItem         `json:"activities"`
	Counts     []activity.ActionCount `json:"actionCounts"`
}
