package warehouses

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const (
	defaultCountry           = "US"
	warehouseNotFoundMessage = "Warehouse not found"
	warehouseInUseMessage    = "Cannot delete warehouse with existing orders or inventory"
)

// Service manages warehouses and exposes their zone/location layout.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*WarehouseList, error)
	Get(ctx context.Context, id uuid.UUID) (*WarehouseDTO, error)
	Create(ctx context.Context, input WarehouseInput) (*WarehouseDTO, error)
	Update(ctx context.Context, id uuid.UUID, input WarehouseInput) (*WarehouseDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	db   *db.Client
	repo Repository
}

func NewService(dbClient *db.Client, repo Repository) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("database client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("warehouses repository required")
	}
	return &service{db: dbClient, repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*WarehouseList, error) {
	params = params.Normalize()
	rows, total, err := s.repo.ListActive(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list warehouses")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	counts, err := s.repo.Counts(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count warehouse children")
	}

	out := &WarehouseList{
		Warehouses: make([]WarehouseDTO, 0, len(rows)),
		Pagination: pagination.NewMeta(params, total),
	}
	for i := range rows {
		dto := FromModel(&rows[i])
		c := counts[rows[i].ID]
		dto.Count = &c
		out.Warehouses = append(out.Warehouses, *dto)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*WarehouseDTO, error) {
	warehouse, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(warehouse), nil
}

func (s *service) Create(ctx context.Context, input WarehouseInput) (*WarehouseDTO, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}
	country := input.Country
	if country == "" {
		country = defaultCountry
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	warehouse := &models.Warehouse{
		Name:     input.Name,
		Address:  input.Address,
		City:     input.City,
		State:    input.State,
		ZipCode:  input.ZipCode,
		Country:  country,
		IsActive: isActive,
	}
	if err := s.repo.Create(ctx, warehouse); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create warehouse")
	}
	return FromModel(warehouse), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input WarehouseInput) (*WarehouseDTO, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}
	warehouse, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	warehouse.Name = input.Name
	warehouse.Address = input.Address
	warehouse.City = input.City
	warehouse.State = input.State
	warehouse.ZipCode = input.ZipCode
	if input.Country != "" {
		warehouse.Country = input.Country
	}
	if input.IsActive != nil {
		warehouse.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, warehouse); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update warehouse")
	}
	return FromModel(warehouse), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	counts, err := s.repo.Counts(ctx, []uuid.UUID{id})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count warehouse children")
	}
	if c := counts[id]; c.Orders > 0 || c.Inventory > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, warehouseInUseMessage)
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete warehouse")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, warehouseNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load warehouse")
	}
	return warehouse, nil
}

func (in WarehouseInput) normalized() WarehouseInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	return in
}

func (in WarehouseInput) validate() error {
	missing := map[string]string{}
	for field, value := range map[string]string{
		"name":    in.Name,
		"address": in.Address,
		"city":    in.City,
		"state":   in.State,
		"zipCode": in.ZipCode,
	} {
		if value == "" {
			missing[field] = "is required"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").WithDetails(missing)
	}
	return nil
}
