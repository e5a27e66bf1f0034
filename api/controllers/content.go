package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	contentsvc "github.com/chronovahq/chronova-backend/internal/content"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
)

type submitFeedbackRequest struct {
	Author string `json:"author" validate:"required,min=2,max=80"`
	Body   string `json:"body" validate:"required,min=5,max=2000"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// GalleryList serves the curated Instagram gallery.
func GalleryList(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		posts, err := svc.ListGallery(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, posts)
	}
}

// FeedbackList serves approved customer feedback.
func FeedbackList(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListFeedback(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// FeedbackSubmit records new feedback. Entries stay hidden until approved.
func FeedbackSubmit(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitFeedbackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.SubmitFeedback(r.Context(), contentsvc.SubmitFeedbackInput{
			Author: payload.Author,
			Body:   payload.Body,
			Rating: payload.Rating,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}
