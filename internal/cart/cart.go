package cart

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/shopspring/decimal"
)

// AddOn is one side item attached to a line, with the display copy captured
// at add time.
type AddOn struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Line is one cart entry. Prices and names are resolved from the catalog
// when the line is added; the client never supplies them.
type Line struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Image       string          `json:"image"`
	SpecID      uuid.UUID       `json:"spec_id"`
	SpecName    string          `json:"spec_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	AddOns      []AddOn         `json:"add_ons,omitempty"`
	Selected    bool            `json:"selected"`
}

// Cart is the mutable session cart. Each order type keeps its own cart, so a
// delivery basket and a pickup basket never mix.
type Cart struct {
	Items  []Line          `json:"items"`
	Coupon *pricing.Coupon `json:"coupon,omitempty"`
}

// mergeKey identifies lines that are the same configuration: same product,
// same spec, same set of add-ons by id and price. Add-on order does not
// matter.
func mergeKey(productID, specID uuid.UUID, addOns []AddOn) string {
	parts := make([]string, 0, len(addOns))
	for _, a := range addOns {
		parts = append(parts, a.ID.String()+"@"+a.Price.String())
	}
	sort.Strings(parts)
	return productID.String() + "|" + specID.String() + "|" + strings.Join(parts, ",")
}

// AddOrMerge adds the line, or bumps the quantity of an existing line with
// the same configuration. A merged line keeps its selection state; a new
// line starts selected.
func (c *Cart) AddOrMerge(line Line) *Line {
	key := mergeKey(line.ProductID, line.SpecID, line.AddOns)
	for i := range c.Items {
		existing := &c.Items[i]
		if mergeKey(existing.ProductID, existing.SpecID, existing.AddOns) == key {
			existing.Quantity += line.Quantity
			return existing
		}
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.Selected = true
	c.Items = append(c.Items, line)
	return &c.Items[len(c.Items)-1]
}

// SetQuantity replaces a line's quantity. Values below one are ignored;
// removing a line is an explicit operation, not a side effect of typing zero.
func (c *Cart) SetQuantity(lineID uuid.UUID, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveLine deletes a line by ID and reports whether it existed.
func (c *Cart) RemoveLine(lineID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleLine flips a line's selection and reports whether it existed.
func (c *Cart) ToggleLine(lineID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].Selected = !c.Items[i].Selected
			return true
		}
	}
	return false
}

// AllSelected reports whether every line is selected. An empty cart counts
// as all-selected, which makes ToggleAll on it a deselect no-op.
func (c *Cart) AllSelected() bool {
	for _, item := range c.Items {
		if !item.Selected {
			return false
		}
	}
	return true
}

// ToggleAll selects every line, unless all are already selected, in which
// case it deselects every line.
func (c *Cart) ToggleAll() {
	target := !c.AllSelected()
	for i := range c.Items {
		c.Items[i].Selected = target
	}
}

// ApplyCoupon attaches the coupon after checking it against the current
// selected subtotal. Applying replaces any previously applied coupon.
func (c *Cart) ApplyCoupon(coupon pricing.Coupon, today pricing.Date) error {
	if err := pricing.CheckCoupon(coupon, pricing.Subtotal(c.PricingItems()), today); err != nil {
		return err
	}
	c.Coupon = &coupon
	return nil
}

// RemoveCoupon detaches the applied coupon, if any.
func (c *Cart) RemoveCoupon() {
	c.Coupon = nil
}

// PricingItems converts the cart lines to the engine's shape.
func (c *Cart) PricingItems() []pricing.LineItem {
	if len(c.Items) == 0 {
		return nil
	}
	out := make([]pricing.LineItem, 0, len(c.Items))
	for _, line := range c.Items {
		item := pricing.LineItem{
			ID:        line.ID,
			ProductID: line.ProductID,
			SpecID:    line.SpecID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Selected:  line.Selected,
		}
		for _, a := range line.AddOns {
			item.AddOns = append(item.AddOns, pricing.AddOn{ID: a.ID, Price: a.Price})
		}
		out = append(out, item)
	}
	return out
}

// SelectedLines returns the lines that would be ordered right now.
func (c *Cart) SelectedLines() []Line {
	var out []Line
	for _, line := range c.Items {
		if line.Selected {
			out = append(out, line)
		}
	}
	return out
}
