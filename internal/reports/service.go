package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/wms-backend/internal/activity"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
)

const (
	DefaultPeriod         = 30
	DefaultActivityPeriod = 7
	MaxPeriod             = 365
	DefaultTopLimit       = 5
	MaxTopLimit           = 50

	activityFeedSize = 50
)

// Service computes dashboard reports straight from the relational tables.
type Service interface {
	Metrics(ctx context.Context, period int) (*Metrics, error)
	TopProducts(ctx context.Context, period, limit int) ([]TopProduct, error)
	WarehousePerformance(ctx context.Context, period int) ([]WarehousePerformance, error)
	OrderStatus(ctx context.Context, period int) (*OrderStatusBreakdown, error)
	InventoryLevels(ctx context.Context) ([]InventoryLevel, error)
	ActivitySummary(ctx context.Context, period int) (*ActivitySummary, error)
}

type service struct {
	repo     Repository
	activity activity.Repository
	now      func() time.Time
}

func NewService(repo Repository, activityRepo activity.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	return &service{
		repo:     repo,
		activity: activityRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// ValidatePeriod checks a window length in days.
func ValidatePeriod(period int) error {
	if period < 1 || period > MaxPeriod {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("period must be between 1 and %d days", MaxPeriod))
	}
	return nil
}

func (s *service) window(period int) Window {
	now := s.now()
	return Window{From: now.AddDate(0, 0, -period), To: now}
}

func (s *service) Metrics(ctx context.Context, period int) (*Metrics, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	current := s.window(period)
	// the upper bound is inclusive of "now" for the current window
	current.To = current.To.Add(time.Nanosecond)
	previous := Window{From: current.From.AddDate(0, 0, -period), To: current.From}

	cur, err := s.repo.OrderTotals(ctx, current)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "current order totals")
	}
	prev, err := s.repo.OrderTotals(ctx, previous)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "previous order totals")
	}
	inventoryValue, err := s.repo.InventoryValue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inventory value")
	}
	completions, err := s.repo.Completions(ctx, current)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order completions")
	}

	out := &Metrics{
		Period:         period,
		TotalOrders:    cur.Orders,
		OrderGrowth:    growth(float64(cur.Orders), float64(prev.Orders)),
		Revenue:        cur.Revenue.Round(2),
		RevenueGrowth:  growth(cur.Revenue.InexactFloat64(), prev.Revenue.InexactFloat64()),
		InventoryValue: inventoryValue.Round(2),
	}
	if avg, ok := averageHours(completions); ok {
		out.AvgOrderTime = &avg
		out.AvgOrderTimeAvailable = true
	}
	return out, nil
}

func (s *service) TopProducts(ctx context.Context, period, limit int) ([]TopProduct, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	if limit < 1 || limit > MaxTopLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", MaxTopLimit))
	}
	rows, err := s.repo.TopProducts(ctx, s.window(period), limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "top products")
	}
	out := make([]TopProduct, 0, len(rows))
	for _, row := range rows {
		row.Revenue = row.Revenue.Round(2)
		out = append(out, row)
	}
	return out, nil
}

func (s *service) WarehousePerformance(ctx context.Context, period int) ([]WarehousePerformance, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	w := s.window(period)

	warehouses, err := s.repo.Warehouses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouses")
	}
	orders, err := s.repo.OrdersByWarehouse(ctx, w)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "orders by warehouse")
	}
	stock, err := s.repo.StockByWarehouse(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stock by warehouse")
	}
	completions, err := s.repo.Completions(ctx, w)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order completions")
	}

	ordersBy := make(map[uuid.UUID]warehouseOrders, len(orders))
	for _, o := range orders {
		ordersBy[o.WarehouseID] = o
	}
	stockBy := make(map[uuid.UUID]int64, len(stock))
	for _, st := range stock {
		stockBy[st.WarehouseID] = st.Total
	}
	completionsBy := make(map[uuid.UUID][]completion)
	for _, c := range completions {
		completionsBy[c.WarehouseID] = append(completionsBy[c.WarehouseID], c)
	}

	out := make([]WarehousePerformance, 0, len(warehouses))
	for _, wh := range warehouses {
		o := ordersBy[wh.ID]
		perf := WarehousePerformance{
			WarehouseID:         wh.ID,
			WarehouseName:       wh.Name,
			TotalOrders:         o.Total,
			DeliveredOrders:     o.Delivered,
			TotalInventoryItems: stockBy[wh.ID],
		}
		if o.Total > 0 {
			eff := round1(float64(o.Delivered) / float64(o.Total) * 100)
			perf.Efficiency = &eff
		}
		if avg, ok := averageHours(completionsBy[wh.ID]); ok {
			perf.AvgOrderTime = &avg
		}
		out = append(out, perf)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalOrders > out[j].TotalOrders })
	return out, nil
}

func (s *service) OrderStatus(ctx context.Context, period int) (*OrderStatusBreakdown, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	rows, err := s.repo.StatusCounts(ctx, s.window(period))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order status counts")
	}
	out := &OrderStatusBreakdown{Period: period, Statuses: make([]StatusCount, 0, len(rows))}
	for _, row := range rows {
		out.Total += row.Count
	}
	for _, row := range rows {
		out.Statuses = append(out.Statuses, StatusCount{
			Status:     row.Status,
			Count:      row.Count,
			Percentage: round1(float64(row.Count) / float64(out.Total) * 100),
		})
	}
	return out, nil
}

func (s *service) InventoryLevels(ctx context.Context) ([]InventoryLevel, error) {
	rows, err := s.repo.InventoryLevels(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inventory levels")
	}
	out := make([]InventoryLevel, 0, len(rows))
	for _, row := range rows {
		minStock, maxStock := 0, 0
		if row.MinStock != nil {
			minStock = *row.MinStock
		}
		if row.MaxStock != nil {
			maxStock = *row.MaxStock
		}
		out = append(out, InventoryLevel{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			SKU:           row.SKU,
			WarehouseName: row.WarehouseName,
			LocationName:  row.LocationName,
			ZoneName:      row.ZoneName,
			Quantity:      row.Quantity,
			AvailableQty:  row.AvailableQty,
			ReservedQty:   row.ReservedQty,
			MinStock:      row.MinStock,
			MaxStock:      row.MaxStock,
			IsLowStock:    row.Quantity <= minStock,
			IsOverstock:   maxStock > 0 && row.Quantity >= maxStock,
			Value:         row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	return out, nil
}

func (s *service) ActivitySummary(ctx context.Context, period int) (*ActivitySummary, error) {
	if err := ValidatePeriod(period); err != nil {
		return nil, err
	}
	since := s.window(period).From

	logs, err := s.activity.Recent(ctx, since, activityFeedSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recent activity")
	}
	counts, err := s.activity.CountByAction(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "activity counts")
	}
	if counts == nil {
		counts = []activity.ActionCount{}
	}

	out := &ActivitySummary{
		Period:     period,
		Activities: make([]ActivityItem, 0, len(logs)),
		Counts:     counts,
	}
	for _, entry := range logs {
		item := ActivityItem{
			ID:        entry.ID,
			Action:    entry.Action,
			Entity:    entry.Entity,
			EntityID:  entry.EntityID,
			CreatedAt: entry.CreatedAt,
		}
		if entry.User != nil {
			item.User = &ActivityUser{
				FirstName: entry.User.FirstName,
				LastName:  entry.User.LastName,
				Role:      entry.User.Role,
			}
		}
		out.Activities = append(out.Activities, item)
	}
	return out, nil
}

// growth is the percentage change from prev to cur, 0 when prev is 0.
func growth(cur, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return round1((cur - prev) / prev * 100)
}

// averageHours is the mean completion time in hours, rounded to one decimal.
func averageHours(rows []completion) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, row := range rows {
		total += row.CompletedAt.Sub(row.CreatedAt)
	}
	return round1(total.Hours() / float64(len(rows))), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
