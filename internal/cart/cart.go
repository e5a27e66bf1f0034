package cart

import (
	"time"

	"github.com/google/uuid"
)

// Line is a single product entry in a cart. Price and display fields are a
// snapshot refreshed on every mutation so the storefront can render the
// cart without extra catalog reads.
type Line struct {
	ProductID      uuid.UUID `json:"product_id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Image          *string   `json:"image,omitempty"`
	Quantity       int       `json:"quantity"`
}

// Cart is the authoritative server-side cart, keyed by the shopper's token.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart returns an empty cart for the token.
func NewCart(token string) *Cart {
	return &Cart{Token: token, Lines: []Line{}}
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// TotalItems sums the quantities across all lines.
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// SubtotalCents sums unit price times quantity across all lines.
func (c *Cart) SubtotalCents() int64 {
	if c == nil {
		return 0
	}
	var subtotal int64
	for _, line := range c.Lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

func (c *Cart) findLine(productID uuid.UUID) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

func (c *Cart) removeLine(productID uuid.UUID) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}
