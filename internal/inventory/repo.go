package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, params pagination.Params) ([]models.Inventory, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	Save(ctx context.Context, row *models.Inventory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOrderItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error)
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

func withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Warehouse").Preload("Location.Zone")
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Inventory, int64, error) {
	var rows []models.Inventory
	total, err := repo.Paginate(r.DB(ctx).Model(&models.Inventory{}), params, repo.NewestFirst, &rows, withDetails)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var row models.Inventory
	if err := withDetails(r.DB(ctx)).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Save writes the stock columns only; associations loaded for display are
// left untouched.
func (r *repository) Save(ctx context.Context, row *models.Inventory) error {
	return r.DB(ctx).Model(row).
		Select("quantity", "available_qty", "reserved_qty", "min_stock", "max_stock", "updated_at").
		Updates(map[string]any{
			"quantity":      row.Quantity,
			"available_qty": row.AvailableQty,
			"reserved_qty":  row.ReservedQty,
			"min_stock":     row.MinStock,
			"max_stock":     row.MaxStock,
			"updated_at":    row.UpdatedAt,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Inventory{}, "id = ?", id).Error
}

func (r *repository) CountOrderItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
