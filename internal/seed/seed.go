// Package seed generates demo and pagination test data. It backs the
// non-production seed endpoints and cmd/seed.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/activity"
	"github.com/angelmondragon/wms-backend/internal/orders"
	"github.com/angelmondragon/wms-backend/internal/products"
	"github.com/angelmondragon/wms-backend/internal/users"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/metrics"
	"github.com/angelmondragon/wms-backend/pkg/security"
)

const (
	AdminEmail    = "admin@wms.com"
	AdminUsername = "admin"
	AdminPassword = "password123"

	DefaultMoreCount = 25
	MaxMoreCount     = 500

	jobSeed      = "seed"
	jobForceSeed = "force_seed"
	jobSeedMore  = "seed_more"
)

// Counts are the table totals reported after every run.
type Counts struct {
	Admin           string `json:"admin"`
	TotalUsers      int64  `json:"totalUsers"`
	TotalWarehouses int64  `json:"totalWarehouses"`
	TotalProducts   int64  `json:"totalProducts"`
	TotalInventory  int64  `json:"totalInventory"`
	TotalOrders     int64  `json:"totalOrders"`
}

// Result is returned by Seed.
type Result struct {
	AlreadySeeded bool   `json:"alreadySeeded"`
	Counts        Counts `json:"counts"`
}

// BatchResult is returned by ForceSeed and SeedMore. Failed rows are logged
// and skipped.
type BatchResult struct {
	Created map[string]int `json:"created"`
	Skipped int            `json:"skipped"`
	Failed  int            `json:"failed"`
	Counts  Counts         `json:"counts"`
}

// Params bundles the generator dependencies.
type Params struct {
	DB      *db.Client
	Logger  *logger.Logger
	Metrics *metrics.JobMetrics
	Now     func() time.Time
	// PasswordCost overrides the bcrypt cost; zero means security.DefaultCost.
	PasswordCost int
}

// Generator writes demo rows through the domain repositories.
type Generator struct {
	db           *db.Client
	logg         *logger.Logger
	metrics      *metrics.JobMetrics
	now          func() time.Time
	passwordCost int
}

func NewGenerator(params Params) (*Generator, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	cost := params.PasswordCost
	if cost == 0 {
		cost = security.DefaultCost
	}
	return &Generator{
		db:           params.DB,
		logg:         params.Logger,
		metrics:      params.Metrics,
		now:          now,
		passwordCost: cost,
	}, nil
}

// run records job metrics around fn.
func (g *Generator) run(ctx context.Context, job string, fn func() error) error {
	start := time.Now()
	err := fn()
	g.metrics.ObserveDuration(job, time.Since(start))
	ctx = g.logg.WithJob(ctx, job, time.Since(start))
	if err != nil {
		g.metrics.IncFailure(job)
		g.logg.Error(ctx, "seed.job_failed", err)
		return err
	}
	g.metrics.IncSuccess(job)
	g.logg.Info(ctx, "seed.job_completed")
	return nil
}

// Seed creates the baseline demo data once. The presence of AdminEmail marks
// the database as seeded.
func (g *Generator) Seed(ctx context.Context) (*Result, error) {
	out := &Result{}
	err := g.run(ctx, jobSeed, func() error {
		userRepo := users.NewRepository(g.db.DB())
		if _, err := userRepo.FindByEmail(ctx, AdminEmail); err == nil {
			out.AlreadySeeded = true
			return nil
		} else if !db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin")
		}

		hash, err := security.HashPasswordWithCost(AdminPassword, g.passwordCost)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
		}

		return g.db.WithTx(ctx, func(tx *gorm.DB) error {
			admin, err := users.NewRepository(tx).Create(ctx, users.CreateUserDTO{
				Email:        AdminEmail,
				Username:     AdminUsername,
				PasswordHash: hash,
				FirstName:    "Admin",
				LastName:     "User",
				Role:         enums.RoleAdmin,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
			}

			primary, err := createSite(ctx, tx, "Main Warehouse", "MAIN")
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create warehouse")
			}

			product, err := products.NewRepository(tx).CreateProduct(ctx, sampleProduct("PROD-001", "Sample Product", "29.99"))
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
			}

			if err := createInventory(ctx, tx, primary, product, 100, admin.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory")
			}

			order, err := g.createOrder(ctx, tx, orderSpec{
				warehouseID: primary.warehouse.ID,
				creatorID:   admin.ID,
				customer:    "Sample Customer",
				status:      enums.OrderStatusPending,
				priority:    enums.OrderPriorityNormal,
				lines:       []orderLine{{product: *product, quantity: 2}},
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
			}

			_, err = activity.NewRepository(tx).Record(ctx, activity.Entry{
				UserID:      admin.ID,
				WarehouseID: &primary.warehouse.ID,
				Action:      models.ActionCreate,
				Entity:      "Order",
				EntityID:    order.ID.String(),
				NewValues:   map[string]any{"orderNumber": order.OrderNumber},
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record activity")
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	counts, err := g.Counts(ctx)
	if err != nil {
		return nil, err
	}
	out.Counts = *counts
	return out, nil
}

// Counts reports the current table totals.
func (g *Generator) Counts(ctx context.Context) (*Counts, error) {
	conn := g.db.DB().WithContext(ctx)
	out := &Counts{Admin: AdminEmail}
	for _, c := range []struct {
		model any
		dest  *int64
	}{
		{&models.User{}, &out.TotalUsers},
		{&models.Warehouse{}, &out.TotalWarehouses},
		{&models.Product{}, &out.TotalProducts},
		{&models.Inventory{}, &out.TotalInventory},
		{&models.Order{}, &out.TotalOrders},
	} {
		if err := conn.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count rows")
		}
	}
	return out, nil
}

// batch accumulates per-row outcomes for ForceSeed and SeedMore.
type batch struct {
	job     string
	created map[string]int
	skipped int
	failed  int
	errs    error
}

func newBatch(job string) *batch {
	return &batch{job: job, created: map[string]int{}}
}

func (b *batch) ok(kind string) {
	b.created[kind]++
}

func (b *batch) fail(kind string, err error) {
	b.failed++
	b.errs = multierr.Append(b.errs, fmt.Errorf("%s: %w", kind, err))
}

func (g *Generator) finish(ctx context.Context, b *batch) (*BatchResult, error) {
	total := 0
	for _, n := range b.created {
		total += n
	}
	g.metrics.AddRows(b.job, "created", total)
	g.metrics.AddRows(b.job, "failed", b.failed)
	g.metrics.AddRows(b.job, "skipped", b.skipped)

	if b.errs != nil {
		errs := multierr.Errors(b.errs)
		ctx = g.logg.WithFields(ctx, map[string]any{"job": b.job, "failed": len(errs)})
		g.logg.Warn(ctx, "seed.rows_failed")
		for _, err := range errs {
			g.logg.Error(ctx, "seed.row_failed", err)
		}
	}

	counts, err := g.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &BatchResult{
		Created: b.created,
		Skipped: b.skipped,
		Failed:  b.failed,
		Counts:  *counts,
	}, nil
}

func (g *Generator) rng() *rand.Rand {
	seed := uint64(g.now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

type site struct {
	warehouse models.Warehouse
	zone      models.Zone
	location  models.Location
}

func createSite(ctx context.Context, tx *gorm.DB, name, code string) (*site, error) {
	conn := tx.WithContext(ctx)
	s := &site{
		warehouse: models.Warehouse{
			Name:     name,
			Address:  "123 Warehouse St",
			City:     "Springfield",
			State:    "IL",
			ZipCode:  "62701",
			Country:  "US",
			IsActive: true,
		},
	}
	if err := conn.Create(&s.warehouse).Error; err != nil {
		return nil, err
	}
	description := "General storage area"
	s.zone = models.Zone{
		WarehouseID: s.warehouse.ID,
		Name:        "Zone A",
		Description: &description,
		Type:        enums.ZoneTypeStorage,
		IsActive:    true,
	}
	if err := conn.Create(&s.zone).Error; err != nil {
		return nil, err
	}
	aisle, shelf, bin := "A", "01", "01"
	capacity := 1000
	s.location = models.Location{
		ZoneID:   s.zone.ID,
		Name:     "A-01-01",
		Barcode:  "LOC-" + code + "-A0101",
		Aisle:    &aisle,
		Shelf:    &shelf,
		Bin:      &bin,
		Type:     enums.LocationTypeShelf,
		Capacity: &capacity,
		IsActive: true,
	}
	if err := conn.Create(&s.location).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func sampleProduct(sku, name, price string) *models.Product {
	category, brand := "General", "WMS"
	return &models.Product{
		SKU:       sku,
		Name:      name,
		Category:  &category,
		Brand:     &brand,
		UnitPrice: decimal.RequireFromString(price),
		IsActive:  true,
	}
}

func createInventory(ctx context.Context, tx *gorm.DB, s *site, product *models.Product, quantity int, createdBy uuid.UUID) error {
	minStock, maxStock := 10, 1000
	reserved := quantity / 10
	now := time.Now().UTC()
	return tx.WithContext(ctx).Create(&models.Inventory{
		ProductID:    product.ID,
		WarehouseID:  s.warehouse.ID,
		LocationID:   s.location.ID,
		Quantity:     quantity,
		ReservedQty:  reserved,
		AvailableQty: quantity - reserved,
		MinStock:     &minStock,
		MaxStock:     &maxStock,
		LastCountAt:  &now,
		CreatedByID:  &createdBy,
	}).Error
}

type orderLine struct {
	product  models.Product
	quantity int
}

type orderSpec struct {
	warehouseID uuid.UUID
	creatorID   uuid.UUID
	assigneeID  *uuid.UUID
	customer    string
	status      enums.OrderStatus
	priority    enums.OrderPriority
	createdAt   time.Time
	lines       []orderLine
}

func (g *Generator) createOrder(ctx context.Context, tx *gorm.DB, spec orderSpec) (*models.Order, error) {
	customer := spec.customer
	order := &models.Order{
		OrderNumber:  orders.NewOrderNumber(g.now()),
		Type:         enums.OrderTypeOutbound,
		WarehouseID:  spec.warehouseID,
		CustomerName: &customer,
		Status:       spec.status,
		Priority:     spec.priority,
		TotalValue:   decimal.Zero,
		CreatedByID:  spec.creatorID,
		AssignedToID: spec.assigneeID,
	}
	for _, line := range spec.lines {
		total := line.product.UnitPrice.Mul(decimal.NewFromInt(int64(line.quantity)))
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  line.product.ID,
			Quantity:   line.quantity,
			UnitPrice:  line.product.UnitPrice,
			TotalPrice: total,
		})
		order.TotalItems += line.quantity
		order.TotalValue = order.TotalValue.Add(total)
	}
	if err := orders.NewRepository(tx).Create(ctx, order); err != nil {
		return nil, err
	}

	if !spec.createdAt.IsZero() {
		at := spec.createdAt.UTC()
		updates := map[string]any{"created_at": at, "updated_at": at}
		if spec.status == enums.OrderStatusDelivered {
			completed := at.Add(time.Duration(4+len(spec.lines)) * time.Hour)
			updates["completed_at"] = completed
			order.CompletedAt = &completed
		}
		if err := tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).UpdateColumns(updates).Error; err != nil {
			return nil, err
		}
		order.CreatedAt = at
	} else if spec.status == enums.OrderStatusDelivered {
		completed := g.now()
		if err := tx.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).UpdateColumn("completed_at", completed).Error; err != nil {
			return nil, err
		}
		order.CompletedAt = &completed
	}
	return order, nil
}
