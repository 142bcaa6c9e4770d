package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Coupon is the discount rule the engine evaluates against a subtotal. Display
// fields (localized names, descriptions) live on the catalog record, not here.
type Coupon struct {
	ID             uuid.UUID        `json:"id"`
	Code           string           `json:"code"`
	Type           enums.CouponType `json:"type"`
	Value          decimal.Decimal  `json:"value"`
	MinOrderAmount decimal.Decimal  `json:"min_order_amount"`
	ExpiryDate     Date             `json:"expiry_date"`
	IsUsed         bool             `json:"is_used"`
}

// IneligibilityReason identifies the first failed coupon check.
type IneligibilityReason string

const (
	ReasonExpired      IneligibilityReason = "expired"
	ReasonUsed         IneligibilityReason = "used"
	ReasonBelowMinimum IneligibilityReason = "below_minimum"
)

// CouponError reports why a coupon cannot be applied. It is the engine's only
// domain error; everything else degrades to a no-op.
type CouponError struct {
	Reason IneligibilityReason
}

func (e *CouponError) Error() string {
	return fmt.Sprintf("coupon inapplicable: %s", e.Reason)
}

// CheckCoupon validates a coupon against the subtotal as of today. Checks run
// in a fixed order (expired, used, below minimum) and the first failure wins,
// since callers surface a single message at a time.
func CheckCoupon(coupon Coupon, subtotal decimal.Decimal, today Date) error {
	if today.After(coupon.ExpiryDate) {
		return &CouponError{Reason: ReasonExpired}
	}
	if coupon.IsUsed {
		return &CouponError{Reason: ReasonUsed}
	}
	if subtotal.LessThan(coupon.MinOrderAmount) {
		return &CouponError{Reason: ReasonBelowMinimum}
	}
	return nil
}

// Discount computes the amount a coupon takes off the subtotal. The result is
// capped at the subtotal for both coupon types, so a pathological value (a
// fixed amount above the subtotal, or a percentage above 1) can never push the
// total negative.
func Discount(coupon *Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case enums.CouponTypeFixed:
		discount = coupon.Value
	case enums.CouponTypePercentage:
		discount = subtotal.Mul(coupon.Value)
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
