package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	couponsvc "github.com/chronovahq/chronova-backend/internal/coupons"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code string `json:"code" validate:"required,max=40"`
}

type validateCouponResponse struct {
	Valid           bool   `json:"valid"`
	Reason          string `json:"reason,omitempty"`
	Code            string `json:"code,omitempty"`
	DiscountPercent int    `json:"discount_percent,omitempty"`
}

// CouponValidate checks a code for the storefront. An unknown or inactive
// code is a 200 with valid=false, not an error.
func CouponValidate(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := validateCouponResponse{Valid: result.Valid, Reason: result.Reason}
		if result.Discount != nil {
			resp.Code = result.Discount.Code
			resp.DiscountPercent = result.Discount.Percent
		}
		responses.WriteSuccess(w, resp)
	}
}
