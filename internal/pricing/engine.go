package pricing

import (
	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// AddOn is one side item attached to a line, priced per unit of the line.
type AddOn struct {
	ID    uuid.UUID       `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// LineItem is one purchasable unit in a cart. UnitPrice is resolved from the
// chosen spec when the line is added; AddOns never repeat within a line.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	SpecID    uuid.UUID       `json:"spec_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	AddOns    []AddOn         `json:"add_ons,omitempty"`
	Selected  bool            `json:"selected"`
}

// EffectivePrice returns (unitPrice + sum of add-on prices) * quantity.
func (l LineItem) EffectivePrice() decimal.Decimal {
	perUnit := l.UnitPrice
	for _, addOn := range l.AddOns {
		perUnit = perUnit.Add(addOn.Price)
	}
	return perUnit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is the engine's input: the lines under consideration, the coupon
// currently applied (if any), and how the order reaches the customer.
type Snapshot struct {
	Items     []LineItem      `json:"items"`
	Coupon    *Coupon         `json:"coupon,omitempty"`
	OrderType enums.OrderType `json:"order_type"`
}

// Config carries the delivery-fee rule. Callers own the constants; the engine
// never hard-codes them.
type Config struct {
	FreeDeliveryThreshold decimal.Decimal
	FlatDeliveryFee       decimal.Decimal
}

// Result is the computed price breakdown for a snapshot.
type Result struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Subtotal sums the effective price of every selected line. Unselected lines
// contribute nothing to any downstream figure.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if !item.Selected {
			continue
		}
		sum = sum.Add(item.EffectivePrice())
	}
	return sum
}

// DeliveryFee returns the flat fee for delivery orders under the free-delivery
// threshold and zero in every other case.
func DeliveryFee(orderType enums.OrderType, subtotal decimal.Decimal, cfg Config) decimal.Decimal {
	if orderType != enums.OrderTypeDelivery {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(cfg.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return cfg.FlatDeliveryFee
}

// Total combines the parts, clamped at zero. The clamp is normally
// unreachable because Discount caps at the subtotal and fees are
// non-negative.
func Total(subtotal, deliveryFee, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(deliveryFee).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Quote computes the full price breakdown for a snapshot. An ineligible or
// absent coupon yields a zero discount; eligibility itself is the caller's
// concern at apply time, and a stale coupon left on a shrunken cart simply
// stops discounting.
func Quote(snapshot Snapshot, cfg Config, today Date) Result {
	subtotal := Subtotal(snapshot.Items)
	fee := DeliveryFee(snapshot.OrderType, subtotal, cfg)

	discount := decimal.Zero
	if snapshot.Coupon != nil {
		if err := CheckCoupon(*snapshot.Coupon, subtotal, today); err == nil {
			discount = Discount(snapshot.Coupon, subtotal)
		}
	}

	return Result{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       Total(subtotal, fee, discount),
	}
}
