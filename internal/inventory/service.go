package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const (
	itemNotFoundMessage   = "Inventory item not found"
	negativeQtyMessage    = "Quantities cannot be negative"
	overAllocatedMessage  = "Available + Reserved quantity cannot exceed total quantity"
	stockBoundsMessage    = "Maximum stock cannot be less than minimum stock"
	itemReferencedMessage = "Cannot delete inventory item with existing order references"
)

// Service lists and maintains inventory rows.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*ItemList, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ItemList, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	out := &ItemList{
		Inventory:  make([]ItemDTO, 0, len(rows)),
		Pagination: pagination.NewMeta(params, total),
	}
	for i := range rows {
		out.Inventory = append(out.Inventory, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ItemDTO, error) {
	if err := validateQuantities(input); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Quantity = input.Quantity
	row.AvailableQty = input.AvailableQty
	row.ReservedQty = input.ReservedQty
	if input.MinStock != nil {
		row.MinStock = input.MinStock
	}
	if input.MaxStock != nil {
		row.MaxStock = input.MaxStock
	}
	if err := validateBounds(row); err != nil {
		return nil, err
	}
	row.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inventory")
	}
	return FromModel(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	refs, err := s.repo.CountOrderItemsForProduct(ctx, row.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count order references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, itemReferencedMessage)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, itemNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory")
	}
	return row, nil
}

func validateQuantities(in UpdateInput) error {
	if in.Quantity < 0 || in.AvailableQty < 0 || in.ReservedQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, negativeQtyMessage)
	}
	if (in.MinStock != nil && *in.MinStock < 0) || (in.MaxStock != nil && *in.MaxStock < 0) {
		return pkgerrors.New(pkgerrors.CodeValidation, negativeQtyMessage)
	}
	if in.AvailableQty+in.ReservedQty > in.Quantity {
		return pkgerrors.New(pkgerrors.CodeValidation, overAllocatedMessage)
	}
	return nil
}

// validateBounds runs on the merged row so a bound sent alone is checked
// against the stored one.
func validateBounds(row *models.Inventory) error {
	if row.MinStock != nil && row.MaxStock != nil && *row.MaxStock < *row.MinStock {
		return pkgerrors.New(pkgerrors.CodeValidation, stockBoundsMessage)
	}
	return nil
}
