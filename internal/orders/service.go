package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/db/models"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
)

const (
	orderNotFoundMessage     = "Order not found"
	invalidStatusMessage     = "Invalid status"
	invalidPriorityMessage   = "Invalid priority"
	invalidTypeMessage       = "Invalid order type"
	assigneeNotFoundMessage  = "Assigned user not found"
	warehouseMissingMessage  = "Warehouse not found"
	onlyPendingDeleteMessage = "Only pending orders can be deleted"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order operations exposed to controllers.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*OrderList, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	Create(ctx context.Context, input CreateInput) (*OrderDetail, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*OrderDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderList, error) {
	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := &OrderList{
		Orders:     make([]OrderSummary, 0, len(rows)),
		Pagination: pagination.NewMeta(params, total),
	}
	for i := range rows {
		out.Orders = append(out.Orders, summaryFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	order, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return detailFromModel(order), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*OrderDetail, error) {
	orderType, priority, err := parseCreateEnums(input)
	if err != nil {
		return nil, err
	}
	if input.CreatedByID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Authentication required")
	}
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Validation failed").
			WithDetails(map[string]string{"customerName": "is required"})
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Item quantity must be at least 1")
		}
	}

	var orderID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		exists, err := txRepo.WarehouseExists(ctx, input.WarehouseID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check warehouse")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeValidation, warehouseMissingMessage)
		}
		if input.AssignedToID != nil {
			if err := checkAssignee(ctx, txRepo, *input.AssignedToID); err != nil {
				return err
			}
		}

		ids := make([]uuid.UUID, 0, len(input.Items))
		for _, item := range input.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := txRepo.FindProducts(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
		}

		order := &models.Order{
			Type:            orderType,
			WarehouseID:     input.WarehouseID,
			CustomerName:    &customer,
			CustomerEmail:   input.CustomerEmail,
			ShippingAddress: input.ShippingAddress,
			Notes:           input.Notes,
			Status:          enums.OrderStatusPending,
			Priority:        priority,
			TotalValue:      decimal.Zero,
			CreatedByID:     input.CreatedByID,
			AssignedToID:    input.AssignedToID,
			Items:           make([]models.OrderItem, 0, len(input.Items)),
		}
		for _, item := range input.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Product not found: %s", item.ProductID))
			}
			lineTotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, models.OrderItem{
				ProductID:  product.ID,
				Quantity:   item.Quantity,
				UnitPrice:  product.UnitPrice,
				TotalPrice: lineTotal,
				Notes:      item.Notes,
			})
			order.TotalItems += item.Quantity
			order.TotalValue = order.TotalValue.Add(lineTotal)
		}

		order.OrderNumber = NewOrderNumber(s.now())
		if err := txRepo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "order_number") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Order number collision, please retry")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*OrderDetail, error) {
	status, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidStatusMessage)
	}
	priority, err := enums.ParseOrderPriority(input.Priority)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidPriorityMessage)
	}

	order, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	switch {
	case input.ClearAssignee:
		order.AssignedToID = nil
	case input.AssignedToID != nil:
		if err := checkAssignee(ctx, s.repo, *input.AssignedToID); err != nil {
			return nil, err
		}
		order.AssignedToID = input.AssignedToID
	}
	if input.CustomerName != nil {
		if name := strings.TrimSpace(*input.CustomerName); name != "" {
			order.CustomerName = &name
		}
	}

	now := s.now()
	switch {
	case status == enums.OrderStatusDelivered && order.Status != enums.OrderStatusDelivered:
		order.CompletedAt = &now
	case status != enums.OrderStatusDelivered:
		order.CompletedAt = nil
	}
	order.Status = status
	order.Priority = priority
	order.UpdatedAt = now

	if err := s.repo.UpdateFields(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeConflict, onlyPendingDeleteMessage)
		}
		if err := txRepo.DeleteWithItems(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, repo Repository, id uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, orderNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

func checkAssignee(ctx context.Context, repo Repository, id uuid.UUID) error {
	exists, err := repo.UserExists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check assignee")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, assigneeNotFoundMessage)
	}
	return nil
}

func parseCreateEnums(input CreateInput) (enums.OrderType, enums.OrderPriority, error) {
	orderType := enums.OrderTypeOutbound
	if strings.TrimSpace(input.Type) != "" {
		parsed, err := enums.ParseOrderType(input.Type)
		if err != nil {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, invalidTypeMessage)
		}
		orderType = parsed
	}
	priority := enums.OrderPriorityNormal
	if strings.TrimSpace(input.Priority) != "" {
		parsed, err := enums.ParseOrderPriority(input.Priority)
		if err != nil {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, invalidPriorityMessage)
		}
		priority = parsed
	}
	return orderType, priority, nil
}
