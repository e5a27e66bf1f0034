package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/middleware"
	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	checkoutsvc "github.com/chronovahq/chronova-backend/internal/checkout"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
)

type submitOrderRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	Phone      string  `json:"phone" validate:"required,min=7,max=20"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Address    string  `json:"address" validate:"required,min=5,max=500"`
	Notes      *string `json:"notes" validate:"omitempty,max=1000"`
	Channel    string  `json:"channel" validate:"required,oneof=standard whatsapp"`
	CouponCode string  `json:"coupon_code" validate:"omitempty,max=40"`
}

// CheckoutSubmit turns the shopper's cart into an order.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		var payload submitOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Submit(r.Context(), token, checkoutsvc.SubmitOrderInput{
			Name:       payload.Name,
			Phone:      payload.Phone,
			Email:      payload.Email,
			Address:    payload.Address,
			Notes:      payload.Notes,
			Channel:    enums.OrderChannel(payload.Channel),
			CouponCode: payload.CouponCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
