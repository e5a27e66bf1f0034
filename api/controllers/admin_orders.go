package controllers

import (
	"net/http"
	"strings"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	ordersvc "github.com/chronovahq/chronova-backend/internal/orders"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type orderListResponse struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// AdminOrderList lists orders newest first with cursor paging.
func AdminOrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := ordersvc.ListFilter{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter"))
				return
			}
			filter.Status = status
		}

		orders, next, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		responses.WriteSuccess(w, orderListResponse{Orders: orders, NextCursor: next})
	}
}

// AdminOrderGet loads one order with its items.
func AdminOrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderUpdateStatus moves an order through its lifecycle.
func AdminOrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, enums.OrderStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
