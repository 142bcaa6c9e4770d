package pricing

import (
	"errors"
	"testing"

	"github.com/hanamura/noodlehouse-backend/pkg/enums"
)

func TestCheckCouponOrderOfChecks(t *testing.T) {
	t.Parallel()

	// Expired, used AND below minimum: expiry must be reported first.
	coupon := Coupon{
		Type:           enums.CouponTypeFixed,
		Value:          dec("5"),
		MinOrderAmount: dec("100"),
		ExpiryDate:     MustParseDate("2024-01-01"),
		IsUsed:         true,
	}

	err := CheckCoupon(coupon, dec("10"), MustParseDate("2025-06-01"))
	assertReason(t, err, ReasonExpired)

	coupon.ExpiryDate = MustParseDate("2025-12-31")
	err = CheckCoupon(coupon, dec("10"), MustParseDate("2025-06-01"))
	assertReason(t, err, ReasonUsed)

	coupon.IsUsed = false
	err = CheckCoupon(coupon, dec("10"), MustParseDate("2025-06-01"))
	assertReason(t, err, ReasonBelowMinimum)

	if err := CheckCoupon(coupon, dec("100"), MustParseDate("2025-06-01")); err != nil {
		t.Fatalf("expected eligible coupon, got %v", err)
	}
}

func TestCheckCouponExpiryDayIsInclusive(t *testing.T) {
	t.Parallel()

	coupon := Coupon{
		Type:       enums.CouponTypeFixed,
		Value:      dec("5"),
		ExpiryDate: MustParseDate("2025-10-15"),
	}

	if err := CheckCoupon(coupon, dec("50"), MustParseDate("2025-10-15")); err != nil {
		t.Fatalf("coupon should remain valid on its expiry day, got %v", err)
	}
	err := CheckCoupon(coupon, dec("50"), MustParseDate("2025-10-16"))
	assertReason(t, err, ReasonExpired)
}

func TestCheckCouponExpiredRegardlessOfSubtotal(t *testing.T) {
	t.Parallel()

	coupon := Coupon{
		Type:           enums.CouponTypeFixed,
		Value:          dec("5"),
		MinOrderAmount: dec("10"),
		ExpiryDate:     MustParseDate("2024-01-01"),
	}

	err := CheckCoupon(coupon, dec("100000"), MustParseDate("2025-06-01"))
	assertReason(t, err, ReasonExpired)
}

func TestDiscountFixedCappedAtSubtotal(t *testing.T) {
	t.Parallel()

	coupon := &Coupon{Type: enums.CouponTypeFixed, Value: dec("10")}

	if got := Discount(coupon, dec("86")); !got.Equal(dec("10")) {
		t.Fatalf("expected discount 10, got %s", got)
	}
	if got := Discount(coupon, dec("7")); !got.Equal(dec("7")) {
		t.Fatalf("expected discount capped at subtotal 7, got %s", got)
	}
}

func TestDiscountPercentage(t *testing.T) {
	t.Parallel()

	coupon := &Coupon{Type: enums.CouponTypePercentage, Value: dec("0.2")}

	if got := Discount(coupon, dec("50")); !got.Equal(dec("10")) {
		t.Fatalf("expected discount 10, got %s", got)
	}

	// Malformed fraction above 1 still caps at the subtotal.
	coupon.Value = dec("1.5")
	if got := Discount(coupon, dec("50")); !got.Equal(dec("50")) {
		t.Fatalf("expected discount capped at 50, got %s", got)
	}
}

func TestDiscountNilCouponIsZero(t *testing.T) {
	t.Parallel()

	if got := Discount(nil, dec("100")); !got.IsZero() {
		t.Fatalf("expected zero discount without coupon, got %s", got)
	}
}

func TestDiscountNegativeValueIsZero(t *testing.T) {
	t.Parallel()

	coupon := &Coupon{Type: enums.CouponTypeFixed, Value: dec("-5")}
	if got := Discount(coupon, dec("100")); !got.IsZero() {
		t.Fatalf("expected zero discount for negative value, got %s", got)
	}
}

func assertReason(t *testing.T, err error, want IneligibilityReason) {
	t.Helper()

	var couponErr *CouponError
	if !errors.As(err, &couponErr) {
		t.Fatalf("expected CouponError, got %v", err)
	}
	if couponErr.Reason != want {
		t.Fatalf("expected reason %s, got %s", want, couponErr.Reason)
	}
}
