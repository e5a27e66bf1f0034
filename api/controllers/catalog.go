package controllers

import (
	"net/http"
	"strings"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	catalogsvc "github.com/chronovahq/chronova-backend/internal/catalog"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

// ProductList serves the storefront catalog listing.
func ProductList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		minPrice, err := validators.ParseQueryInt(r, "min_price_cents", 0, 0, 100000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryInt(r, "max_price_cents", 0, 0, 100000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := catalogsvc.ListParams{
			CategorySlug:  strings.TrimSpace(r.URL.Query().Get("category")),
			Search:        strings.TrimSpace(r.URL.Query().Get("q")),
			FeaturedOnly:  r.URL.Query().Get("featured") == "true",
			InStockOnly:   r.URL.Query().Get("in_stock") == "true",
			MinPriceCents: int64(minPrice),
			MaxPriceCents: int64(maxPrice),
			Sort:          enums.ProductSort(r.URL.Query().Get("sort")),
			Limit:         limit,
			Offset:        offset,
		}

		list, err := svc.ListProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ProductBySlug serves the storefront product detail page.
func ProductBySlug(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoryList serves the storefront category navigation.
func CategoryList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}
