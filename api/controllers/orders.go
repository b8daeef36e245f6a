package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/api/responses"
	"github.com/angelmondragon/wms-backend/api/validators"
	"github.com/angelmondragon/wms-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
)

type createOrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

type createOrderRequest struct {
	WarehouseID     string                   `json:"warehouseId" validate:"required,uuid"`
	Type            string                   `json:"type"`
	Priority        string                   `json:"priority"`
	CustomerName    string                   `json:"customerName" validate:"required"`
	CustomerEmail   *string                  `json:"customerEmail" validate:"omitempty,email"`
	ShippingAddress *string                  `json:"shippingAddress"`
	Notes           *string                  `json:"notes"`
	AssignedToID    *string                  `json:"assignedToId" validate:"omitempty,uuid"`
	Items           []createOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r createOrderRequest) toInput(creator uuid.UUID) (orders.CreateInput, error) {
	input := orders.CreateInput{
		WarehouseID:     uuid.MustParse(r.WarehouseID),
		Type:            r.Type,
		Priority:        r.Priority,
		CustomerName:    r.CustomerName,
		CustomerEmail:   validators.SanitizeOptional(r.CustomerEmail, 255),
		ShippingAddress: validators.SanitizeOptional(r.ShippingAddress, 1000),
		Notes:           validators.SanitizeOptional(r.Notes, 2000),
		CreatedByID:     creator,
	}
	assignee, err := optionalUUID(r.AssignedToID, "assignedToId")
	if err != nil {
		return orders.CreateInput{}, err
	}
	input.AssignedToID = assignee
	for _, item := range r.Items {
		input.Items = append(input.Items, orders.CreateItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
			Notes:     validators.SanitizeOptional(item.Notes, 1000),
		})
	}
	return input, nil
}

// updateOrderRequest treats a missing or null assignedToId as "keep" and an
// empty string as "unassign".
type updateOrderRequest struct {
	Status       string  `json:"status" validate:"required"`
	Priority     string  `json:"priority" validate:"required"`
	AssignedToID *string `json:"assignedToId"`
	CustomerName *string `json:"customerName"`
}

func (r updateOrderRequest) toInput() (orders.UpdateInput, error) {
	input := orders.UpdateInput{
		Status:       r.Status,
		Priority:     r.Priority,
		CustomerName: r.CustomerName,
	}
	if r.AssignedToID != nil && strings.TrimSpace(*r.AssignedToID) == "" {
		input.ClearAssignee = true
		return input, nil
	}
	assignee, err := optionalUUID(r.AssignedToID, "assignedToId")
	if err != nil {
		return orders.UpdateInput{}, err
	}
	input.AssignedToID = assignee
	return input, nil
}

func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}

// OrderCreate records a new order on behalf of the caller.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		creator, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput(creator)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, map[string]any{"order": order}, "Order created successfully")
	}
}

func OrderUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, map[string]any{"order": order}, "Order updated successfully")
	}
}

func OrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "Order deleted successfully")
	}
}
