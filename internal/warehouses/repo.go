package warehouses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const byName = "name ASC, id ASC"

// Repository exposes warehouse persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActive(ctx context.Context, params pagination.Params) ([]models.Warehouse, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	Counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Counts, error)
	Create(ctx context.Context, warehouse *models.Warehouse) error
	Save(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func withLayout(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Zones", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Zones.Locations", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
}

func (r *repository) ListActive(ctx context.Context, params pagination.Params) ([]models.Warehouse, int64, error) {
	var rows []models.Warehouse
	query := r.DB(ctx).Model(&models.Warehouse{}).Where("is_active = ?", true)
	total, err := repo.Paginate(query, params, byName, &rows, withLayout)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := withLayout(r.DB(ctx)).First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

type groupCount struct {
	WarehouseID uuid.UUID
	Total       int64
}

// Counts returns zone, inventory and order counts keyed by warehouse id.
func (r *repository) Counts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Counts, error) {
	out := make(map[uuid.UUID]Counts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = Counts{}
	}

	tally := func(model any, set func(*Counts, int64)) error {
		var rows []groupCount
		err := r.DB(ctx).Model(model).
			Select("warehouse_id, COUNT(*) AS total").
			Where("warehouse_id IN ?", ids).
			Group("warehouse_id").
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			c := out[row.WarehouseID]
			set(&c, row.Total)
			out[row.WarehouseID] = c
		}
		return nil
	}

	if err := tally(&models.Zone{}, func(c *Counts, n int64) { c.Zones = n }); err != nil {
		return nil, err
	}
	if err := tally(&models.Inventory{}, func(c *Counts, n int64) { c.Inventory = n }); err != nil {
		return nil, err
	}
	if err := tally(&models.Order{}, func(c *Counts, n int64) { c.Orders = n }); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	return r.DB(ctx).Create(warehouse).Error
}

func (r *repository) Save(ctx context.Context, warehouse *models.Warehouse) error {
	return r.DB(ctx).Omit("Zones").Save(warehouse).Error
}

// Delete removes the warehouse together with its zones, locations and
// memberships. Callers check for inventory and orders first.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.DB(ctx)
	zoneIDs := db.Model(&models.Zone{}).Select("id").Where("warehouse_id = ?", id)
	if err := db.Where("zone_id IN (?)", zoneIDs).Delete(&models.Location{}).Error; err != nil {
		return err
	}
	if err := db.Where("warehouse_id = ?", id).Delete(&models.Zone{}).Error; err != nil {
		return err
	}
	if err := db.Where("warehouse_id = ?", id).Delete(&models.WarehouseUser{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Warehouse{}, "id = ?", id).Error
}
