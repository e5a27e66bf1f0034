package pricing

import (
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/money"
)

// ShippingPolicy is the resolved shipping rule for a single checkout surface.
type ShippingPolicy struct {
	FreeThresholdCents int64
	FlatFeeCents       int64
}

// PolicyFor resolves the shipping policy for the given channel from config.
// WhatsApp keeps its historical flat fee; everything else shares the default.
func PolicyFor(cfg config.ShippingConfig, channel enums.OrderChannel) ShippingPolicy {
	fee := cfg.FlatFeeCents
	if channel == enums.OrderChannelWhatsApp {
		fee = cfg.WhatsAppFlatFeeCents
	}
	return ShippingPolicy{
		FreeThresholdCents: cfg.FreeThresholdCents,
		FlatFeeCents:       fee,
	}
}

// CouponDiscount is a validated percentage discount applied at checkout.
type CouponDiscount struct {
	Code    string
	Percent int
}

// Totals is the full price breakdown for a cart. All amounts are cents.
type Totals struct {
	SubtotalCents int64
	ShippingCents int64
	DiscountCents int64
	TotalCents    int64
}

// ComputeTotals derives shipping, discount, and the final total from the
// merchandise subtotal. The discount applies to the subtotal only, is
// rounded half up to cents exactly once, and the total never goes below
// zero.
func ComputeTotals(subtotalCents int64, policy ShippingPolicy, coupon *CouponDiscount) (Totals, error) {
	if subtotalCents < 0 {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be non-negative")
	}
	if policy.FlatFeeCents < 0 || policy.FreeThresholdCents < 0 {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping policy must be non-negative")
	}
	if coupon != nil && (coupon.Percent < 1 || coupon.Percent > 100) {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "coupon percent out of range")
	}

	totals := Totals{SubtotalCents: subtotalCents}

	if subtotalCents < policy.FreeThresholdCents {
		totals.ShippingCents = policy.FlatFeeCents
	}

	if coupon != nil {
		totals.DiscountCents = money.ToCents(money.Percent(money.FromCents(subtotalCents), coupon.Percent))
	}

	total := subtotalCents + totals.ShippingCents - totals.DiscountCents
	if total < 0 {
		total = 0
	}
	totals.TotalCents = total

	return totals, nil
}
