package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	contentsvc "github.com/chronovahq/chronova-backend/internal/content"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

type upsertPostRequest struct {
	ImageURL  string  `json:"image_url" validate:"required,url"`
	Caption   *string `json:"caption" validate:"omitempty,max=500"`
	Permalink *string `json:"permalink" validate:"omitempty,url"`
	Position  int     `json:"position" validate:"min=0"`
	Active    bool    `json:"active"`
}

type feedbackApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

func (r upsertPostRequest) toInput() contentsvc.UpsertPostInput {
	return contentsvc.UpsertPostInput{
		ImageURL:  r.ImageURL,
		Caption:   r.Caption,
		Permalink: r.Permalink,
		Position:  r.Position,
		Active:    r.Active,
	}
}

// AdminPostList lists every gallery entry, hidden ones included.
func AdminPostList(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.ListAllPosts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, posts)
	}
}

// AdminPostCreate adds a gallery entry.
func AdminPostCreate(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.CreatePost(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

// AdminPostUpdate edits a gallery entry.
func AdminPostUpdate(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "postID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.UpdatePost(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, post)
	}
}

// AdminPostDelete removes a gallery entry.
func AdminPostDelete(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "postID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePost(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminFeedbackList lists all feedback for moderation.
func AdminFeedbackList(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListAllFeedback(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// AdminFeedbackApprove flips a feedback entry's moderation state.
func AdminFeedbackApprove(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "feedbackID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload feedbackApprovalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetFeedbackApproval(r.Context(), id, *payload.Approved); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"approved": *payload.Approved})
	}
}

// AdminFeedbackDelete removes a feedback entry.
func AdminFeedbackDelete(svc contentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "feedbackID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFeedback(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
