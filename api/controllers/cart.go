package controllers

import (
	"net/http"

	"github.com/chronovahq/chronova-backend/api/middleware"
	"github.com/chronovahq/chronova-backend/api/responses"
	"github.com/chronovahq/chronova-backend/api/validators"
	cartsvc "github.com/chronovahq/chronova-backend/internal/cart"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/google/uuid"
)

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Quantities below one are ignored by the cart service; deletions go
// through the remove endpoint.
type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Token         string         `json:"token"`
	Lines         []cartsvc.Line `json:"lines"`
	TotalItems    int            `json:"total_items"`
	SubtotalCents int64          `json:"subtotal_cents"`
}

func newCartResponse(c *cartsvc.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cartsvc.Line{}
	}
	return cartResponse{
		Token:         c.Token,
		Lines:         lines,
		TotalItems:    c.TotalItems(),
		SubtotalCents: c.SubtotalCents(),
	}
}

// CartGet returns the shopper's current cart.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireCartToken(w, r, logg)
		if !ok {
			return
		}

		cart, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cart))
	}
}

// CartAddItem adds a product to the cart, merging into an existing line.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireCartToken(w, r, logg)
		if !ok {
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddItem(r.Context(), token, payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cart))
	}
}

// CartUpdateItem sets the quantity of an existing line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireCartToken(w, r, logg)
		if !ok {
			return
		}

		productID, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.UpdateQuantity(r.Context(), token, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cart))
	}
}

// CartRemoveItem drops a line. Removing an absent product is a no-op.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireCartToken(w, r, logg)
		if !ok {
			return
		}

		productID, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.RemoveItem(r.Context(), token, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cart))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireCartToken(w, r, logg)
		if !ok {
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cartsvc.NewCart(token)))
	}
}

func requireCartToken(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	token := middleware.CartTokenFromContext(r.Context())
	if token == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
		return "", false
	}
	return token, true
}
