package pricing

import (
	"testing"

	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/enums"
)

func testShippingConfig() config.ShippingConfig {
	return config.ShippingConfig{
		FreeThresholdCents:   5000,
		FlatFeeCents:         500,
		WhatsAppFlatFeeCents: 400,
	}
}

func TestPolicyForChannels(t *testing.T) {
	cfg := testShippingConfig()

	standard := PolicyFor(cfg, enums.OrderChannelStandard)
	if standard.FlatFeeCents != 500 || standard.FreeThresholdCents != 5000 {
		t.Fatalf("unexpected standard policy %+v", standard)
	}

	whatsapp := PolicyFor(cfg, enums.OrderChannelWhatsApp)
	if whatsapp.FlatFeeCents != 400 {
		t.Fatalf("expected whatsapp fee 400 got %d", whatsapp.FlatFeeCents)
	}
}

func TestComputeTotalsFreeShippingAtThreshold(t *testing.T) {
	policy := PolicyFor(testShippingConfig(), enums.OrderChannelStandard)

	// $51.98 clears the $50.00 threshold.
	totals, err := ComputeTotals(5198, policy, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.ShippingCents != 0 {
		t.Fatalf("expected free shipping got %d", totals.ShippingCents)
	}
	if totals.TotalCents != 5198 {
		t.Fatalf("expected total 5198 got %d", totals.TotalCents)
	}

	// Exactly at the threshold still ships free.
	totals, err = ComputeTotals(5000, policy, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.ShippingCents != 0 {
		t.Fatalf("expected free shipping at threshold got %d", totals.ShippingCents)
	}

	// One cent under pays the flat fee.
	totals, err = ComputeTotals(4999, policy, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.ShippingCents != 500 {
		t.Fatalf("expected flat fee got %d", totals.ShippingCents)
	}
	if totals.TotalCents != 5499 {
		t.Fatalf("expected total 5499 got %d", totals.TotalCents)
	}
}

func TestComputeTotalsWhatsAppCouponScenario(t *testing.T) {
	policy := PolicyFor(testShippingConfig(), enums.OrderChannelWhatsApp)

	// $30.00 subtotal, $4.00 WhatsApp fee, 20% coupon.
	totals, err := ComputeTotals(3000, policy, &CouponDiscount{Code: "SAVE20", Percent: 20})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.ShippingCents != 400 {
		t.Fatalf("expected shipping 400 got %d", totals.ShippingCents)
	}
	if totals.DiscountCents != 600 {
		t.Fatalf("expected discount 600 got %d", totals.DiscountCents)
	}
	if totals.TotalCents != 2800 {
		t.Fatalf("expected total 2800 got %d", totals.TotalCents)
	}
}

func TestComputeTotalsDiscountRoundsHalfUp(t *testing.T) {
	policy := ShippingPolicy{FreeThresholdCents: 0, FlatFeeCents: 0}

	// 10% of $10.05 is $1.005, which rounds up to $1.01.
	totals, err := ComputeTotals(1005, policy, &CouponDiscount{Code: "TEN", Percent: 10})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.DiscountCents != 101 {
		t.Fatalf("expected discount 101 got %d", totals.DiscountCents)
	}
	if totals.TotalCents != 904 {
		t.Fatalf("expected total 904 got %d", totals.TotalCents)
	}
}

func TestComputeTotalsFullDiscountFloorsAtZero(t *testing.T) {
	policy := ShippingPolicy{FreeThresholdCents: 0, FlatFeeCents: 0}

	totals, err := ComputeTotals(2599, policy, &CouponDiscount{Code: "COMP", Percent: 100})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.DiscountCents != 2599 {
		t.Fatalf("expected full discount got %d", totals.DiscountCents)
	}
	if totals.TotalCents != 0 {
		t.Fatalf("expected total 0 got %d", totals.TotalCents)
	}
}

func TestComputeTotalsZeroSubtotalStillPaysShipping(t *testing.T) {
	policy := PolicyFor(testShippingConfig(), enums.OrderChannelStandard)

	// Zero is below the threshold, so the flat fee applies like any other
	// under-threshold subtotal.
	totals, err := ComputeTotals(0, policy, &CouponDiscount{Code: "SAVE20", Percent: 20})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if totals.ShippingCents != 500 {
		t.Fatalf("expected flat fee 500 got %d", totals.ShippingCents)
	}
	if totals.DiscountCents != 0 {
		t.Fatalf("expected discount 0 got %d", totals.DiscountCents)
	}
	if totals.TotalCents != 500 {
		t.Fatalf("expected total 500 got %d", totals.TotalCents)
	}
}

func TestComputeTotalsRejectsBadInputs(t *testing.T) {
	policy := PolicyFor(testShippingConfig(), enums.OrderChannelStandard)

	if _, err := ComputeTotals(-1, policy, nil); err == nil {
		t.Fatal("expected error for negative subtotal")
	}
	if _, err := ComputeTotals(1000, policy, &CouponDiscount{Percent: 0}); err == nil {
		t.Fatal("expected error for zero percent")
	}
	if _, err := ComputeTotals(1000, policy, &CouponDiscount{Percent: 101}); err == nil {
		t.Fatal("expected error for percent above 100")
	}
}
