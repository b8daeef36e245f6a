package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
)

// Window is a half-open [From, To) range on created_at.
type Window struct {
	From time.Time
	To   time.Time
}

type orderTotals struct {
	Orders  int64
	Revenue decimal.Decimal
}

type completion struct {
	WarehouseID uuid.UUID
	CreatedAt   time.Time
	CompletedAt time.Time
}

type warehouseOrders struct {
	WarehouseID uuid.UUID
	Total       int64
	Delivered   int64
}

type warehouseStock struct {
	WarehouseID uuid.UUID
	Total       int64
}

type statusRow struct {
	Status enums.OrderStatus
	Count  int64
}

type levelRow struct {
	ProductID     uuid.UUID
	ProductName   string
	SKU           string
	UnitPrice     decimal.Decimal
	WarehouseName string
	LocationName  string
	ZoneName      string
	Quantity      int
	AvailableQty  int
	ReservedQty   int
	MinStock      *int
	MaxStock      *int
}

// Repository runs the read-only aggregation queries. Date arithmetic stays in
// Go so the same SQL runs on Postgres and SQLite.
type Repository interface {
	OrderTotals(ctx context.Context, w Window) (orderTotals, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	Completions(ctx context.Context, w Window) ([]completion, error)
	TopProducts(ctx context.Context, w Window, limit int) ([]TopProduct, error)
	Warehouses(ctx context.Context) ([]models.Warehouse, error)
	OrdersByWarehouse(ctx context.Context, w Window) ([]warehouseOrders, error)
	StockByWarehouse(ctx context.Context) ([]warehouseStock, error)
	StatusCounts(ctx context.Context, w Window) ([]statusRow, error)
	InventoryLevels(ctx context.Context) ([]levelRow, error)
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) inWindow(ctx context.Context, model any, column string, w Window) *gorm.DB {
	return r.DB(ctx).Model(model).
		Where(column+" >= ? AND "+column+" < ?", w.From.UTC(), w.To.UTC())
}

func (r *repository) OrderTotals(ctx context.Context, w Window) (orderTotals, error) {
	var out orderTotals
	err := r.inWindow(ctx, &models.Order{}, "created_at", w).
		Select("COUNT(*) AS orders, COALESCE(SUM(total_value), 0) AS revenue").
		Scan(&out).Error
	return out, err
}

func (r *repository) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var out struct{ Value decimal.Decimal }
	err := r.DB(ctx).Table("inventory").
		Select("COALESCE(SUM(inventory.quantity * products.unit_price), 0) AS value").
		Joins("JOIN products ON products.id = inventory.product_id").
		Scan(&out).Error
	return out.Value, err
}

func (r *repository) Completions(ctx context.Context, w Window) ([]completion, error) {
	var rows []completion
	err := r.inWindow(ctx, &models.Order{}, "completed_at", w).
		Select("warehouse_id, created_at, completed_at").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TopProducts(ctx context.Context, w Window, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := r.DB(ctx).Table("order_items").
		Select(`products.id AS product_id, products.name AS product_name, products.sku AS sku,
			COALESCE(SUM(order_items.quantity), 0) AS units_sold,
			COALESCE(SUM(order_items.total_price), 0) AS revenue`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", w.From.UTC(), w.To.UTC()).
		Group("products.id, products.name, products.sku").
		Order("units_sold DESC, products.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Warehouses(ctx context.Context) ([]models.Warehouse, error) {
	var rows []models.Warehouse
	err := r.DB(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) OrdersByWarehouse(ctx context.Context, w Window) ([]warehouseOrders, error) {
	var rows []warehouseOrders
	err := r.inWindow(ctx, &models.Order{}, "created_at", w).
		Select("warehouse_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS delivered", enums.OrderStatusDelivered).
		Group("warehouse_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) StockByWarehouse(ctx context.Context) ([]warehouseStock, error) {
	var rows []warehouseStock
	err := r.DB(ctx).Model(&models.Inventory{}).
		Select("warehouse_id, COUNT(*) AS total").
		Group("warehouse_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) StatusCounts(ctx context.Context, w Window) ([]statusRow, error) {
	var rows []statusRow
	err := r.inWindow(ctx, &models.Order{}, "created_at", w).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC, status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) InventoryLevels(ctx context.Context) ([]levelRow, error) {
	var rows []levelRow
	err := r.DB(ctx).Table("inventory").
		Select(`products.id AS product_id, products.name AS product_name, products.sku AS sku,
			products.unit_price AS unit_price, warehouses.name AS warehouse_name,
			locations.name AS location_name, zones.name AS zone_name,
			inventory.quantity AS quantity, inventory.available_qty AS available_qty,
			inventory.reserved_qty AS reserved_qty, inventory.min_stock AS min_stock,
			inventory.max_stock AS max_stock`).
		Joins("JOIN products ON products.id = inventory.product_id").
		Joins("JOIN warehouses ON warehouses.id = inventory.warehouse_id").
		Joins("JOIN locations ON locations.id = inventory.location_id").
		Joins("JOIN zones ON zones.id = locations.zone_id").
		Scan(&rows).Error
	return rows, err
}
