package controllers

import (
	"net/http"
	"strings"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	customersvc "github.com/chronovahq/chronova-backend/internal/customers"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
)

type customerListResponse struct {
	Customers  []models.Customer `json:"customers"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// AdminCustomerList lists customers newest first with cursor paging.
func AdminCustomerList(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customers, next, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if customers == nil {
			customers = []models.Customer{}
		}
		responses.WriteSuccess(w, customerListResponse{Customers: customers, NextCursor: next})
	}
}

// AdminCustomerGet loads a customer with their order history.
func AdminCustomerGet(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
