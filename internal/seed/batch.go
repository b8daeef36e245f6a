package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/activity"
	"github.com/angelmondragon/wms-backend/internal/products"
	"github.com/angelmondragon/wms-backend/internal/users"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/security"
)

const (
	forceUsers      = 50
	forceWarehouses = 5
	forceProducts   = 50
	forceOrders     = 50
	forceOrderDays  = 60
	moreOrderDays   = 30

	forceSKUPrefix = "TEST-"
	testPassword   = "password123"
)

var categories = []string{"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Toys", "Food", "Tools"}

// weighted toward finished work so reports have completions to average.
var seedStatuses = []enums.OrderStatus{
	enums.OrderStatusPending,
	enums.OrderStatusProcessing,
	enums.OrderStatusPicking,
	enums.OrderStatusPacked,
	enums.OrderStatusShipped,
	enums.OrderStatusDelivered,
	enums.OrderStatusDelivered,
	enums.OrderStatusCancelled,
}

var seedPriorities = []enums.OrderPriority{
	enums.OrderPriorityLow,
	enums.OrderPriorityNormal,
	enums.OrderPriorityNormal,
	enums.OrderPriorityHigh,
	enums.OrderPriorityUrgent,
}

// MoreOptions controls SeedMore.
type MoreOptions struct {
	Count int
}

func (o MoreOptions) count() (int, error) {
	switch {
	case o.Count == 0:
		return DefaultMoreCount, nil
	case o.Count < 0 || o.Count > MaxMoreCount:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("count must be between 1 and %d", MaxMoreCount))
	}
	return o.Count, nil
}

// ForceSeed adds pagination test data. Rows whose unique keys already exist
// are skipped, so repeated runs only fill gaps (orders always get added).
func (g *Generator) ForceSeed(ctx context.Context) (*BatchResult, error) {
	b := newBatch(jobForceSeed)
	err := g.run(ctx, jobForceSeed, func() error {
		conn := g.db.DB()
		rng := g.rng()

		hash, err := security.HashPasswordWithCost(testPassword, g.passwordCost)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}

		userRepo := users.NewRepository(conn)
		roles := enums.Roles()
		for i := 1; i <= forceUsers; i++ {
			email := fmt.Sprintf("user%d@test.com", i)
			username := fmt.Sprintf("user%d", i)
			exists, err := userRepo.ExistsByEmailOrUsername(ctx, email, username, uuid.Nil)
			if err != nil {
				b.fail("user", err)
				continue
			}
			if exists {
				b.skipped++
				continue
			}
			active := i%10 != 0
			_, err = userRepo.Create(ctx, users.CreateUserDTO{
				Email:        email,
				Username:     username,
				PasswordHash: hash,
				FirstName:    "User",
				LastName:     fmt.Sprintf("%d", i),
				Role:         roles[(i-1)%len(roles)],
				IsActive:     &active,
			})
			if err != nil {
				b.fail("user", err)
				continue
			}
			b.ok("users")
		}

		var sites []*site
		for i := 1; i <= forceWarehouses; i++ {
			code := fmt.Sprintf("WH%d", i)
			existing, err := findSite(ctx, conn, barcodeFor(code))
			if err == nil {
				sites = append(sites, existing)
				b.skipped++
				continue
			}
			if !db.IsNotFound(err) {
				b.fail("warehouse", err)
				continue
			}
			var created *site
			err = g.db.WithTx(ctx, func(tx *gorm.DB) error {
				var txErr error
				created, txErr = createSite(ctx, tx, fmt.Sprintf("Warehouse %d", i), code)
				return txErr
			})
			if err != nil {
				b.fail("warehouse", err)
				continue
			}
			sites = append(sites, created)
			b.ok("warehouses")
		}
		if len(sites) == 0 {
			return pkgerrors.New(pkgerrors.CodeInternal, "no warehouses available for seeding")
		}

		creators, err := g.activeUserIDs(ctx, conn)
		if err != nil {
			return err
		}
		if len(creators) == 0 {
			return pkgerrors.New(pkgerrors.CodeInternal, "no active users available for seeding")
		}

		catalog := products.NewRepository(conn)
		for i := 1; i <= forceProducts; i++ {
			sku := fmt.Sprintf("%s%03d", forceSKUPrefix, i)
			if _, err := catalog.FindBySKU(ctx, sku); err == nil {
				b.skipped++
				continue
			} else if !db.IsNotFound(err) {
				b.fail("product", err)
				continue
			}
			product := randomProduct(rng, sku, fmt.Sprintf("Test Product %d", i), i)
			s := sites[(i-1)%len(sites)]
			err := g.db.WithTx(ctx, func(tx *gorm.DB) error {
				created, err := catalog.WithTx(tx).CreateProduct(ctx, product)
				if err != nil {
					return err
				}
				return createInventory(ctx, tx, s, created, 50+rng.IntN(450), pick(rng, creators))
			})
			if err != nil {
				b.fail("product", err)
				continue
			}
			b.ok("products")
			b.ok("inventory")
		}

		stock, err := catalog.ListBySKUPrefix(ctx, forceSKUPrefix)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load seeded products")
		}
		g.addOrders(ctx, b, rng, forceOrders, forceOrderDays, sites, creators, stock)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.finish(ctx, b)
}

// SeedMore adds a batch of products, inventory, orders and activity rows to
// an already seeded database. Every generated key carries a fresh suffix.
func (g *Generator) SeedMore(ctx context.Context, opts MoreOptions) (*BatchResult, error) {
	count, err := opts.count()
	if err != nil {
		return nil, err
	}

	b := newBatch(jobSeedMore)
	err = g.run(ctx, jobSeedMore, func() error {
		conn := g.db.DB()
		rng := g.rng()

		sites, err := loadSites(ctx, conn)
		if err != nil {
			return err
		}
		creators, err := g.activeUserIDs(ctx, conn)
		if err != nil {
			return err
		}
		if len(sites) == 0 || len(creators) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "Missing required data. Please run /api/seed first.")
		}

		suffix := uuid.NewString()[:8]
		catalog := products.NewRepository(conn)
		var stock []models.Product
		for i := 1; i <= count; i++ {
			sku := fmt.Sprintf("MORE-%s-%03d", suffix, i)
			product := randomProduct(rng, sku, fmt.Sprintf("Product %s %d", suffix, i), i)
			s := sites[rng.IntN(len(sites))]
			err := g.db.WithTx(ctx, func(tx *gorm.DB) error {
				created, err := catalog.WithTx(tx).CreateProduct(ctx, product)
				if err != nil {
					return err
				}
				return createInventory(ctx, tx, s, created, rng.IntN(500), pick(rng, creators))
			})
			if err != nil {
				b.fail("product", err)
				continue
			}
			stock = append(stock, *product)
			b.ok("products")
			b.ok("inventory")
		}

		if len(stock) == 0 {
			stock, err = catalog.ListActive(ctx, 100)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
			}
		}
		g.addOrders(ctx, b, rng, count, moreOrderDays, sites, creators, stock)

		trail := activity.NewRepository(conn)
		actions := []string{models.ActionCreate, models.ActionUpdate, models.ActionPick, models.ActionCount, models.ActionLogin}
		for i := 0; i < count; i++ {
			s := sites[rng.IntN(len(sites))]
			action := actions[i%len(actions)]
			entry := activity.Entry{
				UserID:      pick(rng, creators),
				WarehouseID: &s.warehouse.ID,
				Action:      action,
				Entity:      "Inventory",
				NewValues:   map[string]any{"batch": suffix, "seq": i + 1},
				IPAddress:   "127.0.0.1",
				UserAgent:   "wms-seed",
			}
			if len(stock) > 0 {
				entry.Entity = "Product"
				entry.EntityID = stock[i%len(stock)].ID.String()
			}
			if _, err := trail.Record(ctx, entry); err != nil {
				b.fail("activity", err)
				continue
			}
			b.ok("activities")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.finish(ctx, b)
}

func (g *Generator) addOrders(ctx context.Context, b *batch, rng *rand.Rand, n, days int, sites []*site, creators []uuid.UUID, stock []models.Product) {
	if len(stock) == 0 || len(creators) == 0 {
		b.fail("order", fmt.Errorf("no products or users available"))
		return
	}
	now := g.now()
	for i := 0; i < n; i++ {
		size := 1 + rng.IntN(3)
		lines := make([]orderLine, 0, size)
		seen := map[uuid.UUID]bool{}
		for j := 0; j < size; j++ {
			product := stock[rng.IntN(len(stock))]
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			lines = append(lines, orderLine{product: product, quantity: 1 + rng.IntN(10)})
		}

		spec := orderSpec{
			warehouseID: sites[rng.IntN(len(sites))].warehouse.ID,
			creatorID:   pick(rng, creators),
			customer:    fmt.Sprintf("Customer %d", 1+rng.IntN(100)),
			status:      seedStatuses[rng.IntN(len(seedStatuses))],
			priority:    seedPriorities[rng.IntN(len(seedPriorities))],
			createdAt:   now.Add(-time.Duration(rng.IntN(days*24*60)) * time.Minute),
			lines:       lines,
		}
		if spec.status != enums.OrderStatusPending {
			assignee := pick(rng, creators)
			spec.assigneeID = &assignee
		}

		err := g.db.WithTx(ctx, func(tx *gorm.DB) error {
			_, err := g.createOrder(ctx, tx, spec)
			return err
		})
		if err != nil {
			b.fail("order", err)
			continue
		}
		b.ok("orders")
	}
}

func (g *Generator) activeUserIDs(ctx context.Context, conn *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn.WithContext(ctx).
		Model(&models.User{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Limit(100).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load users")
	}
	return ids, nil
}

func barcodeFor(code string) string {
	return "LOC-" + code + "-A0101"
}

func findSite(ctx context.Context, conn *gorm.DB, barcode string) (*site, error) {
	var loc models.Location
	if err := conn.WithContext(ctx).Preload("Zone").Where("barcode = ?", barcode).First(&loc).Error; err != nil {
		return nil, err
	}
	return siteFromLocation(loc), nil
}

func loadSites(ctx context.Context, conn *gorm.DB) ([]*site, error) {
	var locs []models.Location
	err := conn.WithContext(ctx).
		Preload("Zone").
		Where("is_active = ?", true).
		Order("created_at ASC").
		Limit(50).
		Find(&locs).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load locations")
	}
	out := make([]*site, 0, len(locs))
	for _, loc := range locs {
		if loc.Zone == nil {
			continue
		}
		out = append(out, siteFromLocation(loc))
	}
	return out, nil
}

func siteFromLocation(loc models.Location) *site {
	s := &site{location: loc}
	if loc.Zone != nil {
		s.zone = *loc.Zone
		s.warehouse = models.Warehouse{ID: loc.Zone.WarehouseID}
	}
	return s
}

func randomProduct(rng *rand.Rand, sku, name string, i int) *models.Product {
	category := categories[i%len(categories)]
	brand := fmt.Sprintf("Brand %c", 'A'+rune(i%5))
	description := "Seeded test product"
	cents := 500 + rng.IntN(49500)
	return &models.Product{
		SKU:         sku,
		Name:        name,
		Description: &description,
		Category:    &category,
		Brand:       &brand,
		UnitPrice:   decimal.New(int64(cents), -2),
		IsActive:    true,
	}
}

func pick(rng *rand.Rand, ids []uuid.UUID) uuid.UUID {
	return ids[rng.IntN(len(ids))]
}
