package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	couponsvc "github.com/chronovahq/chronova-backend/internal/coupons"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

type upsertCouponRequest struct {
	Code            string `json:"code" validate:"required,min=2,max=40"`
	DiscountPercent int    `json:"discount_percent" validate:"required,min=1,max=100"`
	Active          bool   `json:"active"`
}

// AdminCouponList lists every coupon for the back office.
func AdminCouponList(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupons, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupons)
	}
}

// AdminCouponCreate adds a coupon. Codes are stored uppercase.
func AdminCouponCreate(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Create(r.Context(), couponsvc.UpsertCouponInput{
			Code:            payload.Code,
			DiscountPercent: payload.DiscountPercent,
			Active:          payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminCouponUpdate edits a coupon.
func AdminCouponUpdate(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "couponID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Update(r.Context(), id, couponsvc.UpsertCouponInput{
			Code:            payload.Code,
			DiscountPercent: payload.DiscountPercent,
			Active:          payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// AdminCouponDelete removes a coupon.
func AdminCouponDelete(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "couponID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
