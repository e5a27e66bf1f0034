package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	catalogsvc "github.com/chronovahq/chronova-backend/internal/catalog"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

type upsertCategoryRequest struct {
	Slug     string `json:"slug" validate:"required,min=2,max=120"`
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Position int    `json:"position" validate:"min=0"`
}

// AdminCategoryCreate adds a navigation category.
func AdminCategoryCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalogsvc.UpsertCategoryInput{
			Slug:     payload.Slug,
			Name:     payload.Name,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminCategoryUpdate edits a category.
func AdminCategoryUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, catalogsvc.UpsertCategoryInput{
			Slug:     payload.Slug,
			Name:     payload.Name,
			Position: payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// AdminCategoryDelete removes a category.
func AdminCategoryDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "categoryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
