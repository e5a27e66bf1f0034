package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	catalogsvc "github.com/chronovahq/chronova-backend/internal/catalog"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
)

type upsertProductRequest struct {
	Slug                string     `json:"slug" validate:"required,min=2,max=120"`
	Name                string     `json:"name" validate:"required,min=2,max=200"`
	Brand               *string    `json:"brand" validate:"omitempty,max=120"`
	Description         *string    `json:"description" validate:"omitempty,max=5000"`
	CategoryID          *uuid.UUID `json:"category_id"`
	PriceCents          int64      `json:"price_cents" validate:"required,min=1"`
	CompareAtPriceCents *int64     `json:"compare_at_price_cents" validate:"omitempty,min=1"`
	Stock               int        `json:"stock" validate:"min=0"`
	Images              []string   `json:"images" validate:"omitempty,dive,url"`
	IsActive            bool       `json:"is_active"`
	IsFeatured          bool       `json:"is_featured"`
}

func (r upsertProductRequest) toInput() catalogsvc.UpsertProductInput {
	return catalogsvc.UpsertProductInput{
		Slug:                r.Slug,
		Name:                r.Name,
		Brand:               r.Brand,
		Description:         r.Description,
		CategoryID:          r.CategoryID,
		PriceCents:          r.PriceCents,
		CompareAtPriceCents: r.CompareAtPriceCents,
		Stock:               r.Stock,
		Images:              r.Images,
		IsActive:            r.IsActive,
		IsFeatured:          r.IsFeatured,
	}
}

// AdminProductList lists products for the back office, inactive included.
func AdminProductList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 100000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListProducts(r.Context(), catalogsvc.ListParams{
			Search:          r.URL.Query().Get("q"),
			Sort:            enums.ProductSort(r.URL.Query().Get("sort")),
			IncludeInactive: true,
			Limit:           limit,
			Offset:          offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminProductGet loads one product with full detail.
func AdminProductGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductCreate adds a product to the catalog.
func AdminProductCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate edits a product. Rating fields are never writable here.
func AdminProductUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product.
func AdminProductDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
