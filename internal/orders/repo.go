package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/internal/repo"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, params pagination.Params) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateFields(ctx context.Context, order *models.Order) error
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
	WarehouseExists(ctx context.Context, id uuid.UUID) (bool, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	FindProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

func withSummary(db *gorm.DB) *gorm.DB {
	return db.Preload("Warehouse").Preload("AssignedTo")
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Order, int64, error) {
	var rows []models.Order
	total, err := repo.Paginate(r.DB(ctx).Model(&models.Order{}), params, repo.NewestFirst, &rows, withSummary)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := withSummary(r.DB(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts the order; gorm writes order.Items after the parent row.
func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Create(order).Error
}

// UpdateFields writes the mutable columns of order.
func (r *repository) UpdateFields(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Model(&models.Order{ID: order.ID}).Updates(map[string]any{
		"status":         order.Status,
		"priority":       order.Priority,
		"assigned_to_id": order.AssignedToID,
		"customer_name":  order.CustomerName,
		"completed_at":   order.CompletedAt,
		"updated_at":     order.UpdatedAt,
	}).Error
}

func (r *repository) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	if err := r.DB(ctx).Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.DB(ctx).Delete(&models.Order{}, "id = ?", id).Error
}

func (r *repository) WarehouseExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.Warehouse{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.DB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}
