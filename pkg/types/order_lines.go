package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineAddOn freezes one side item on a placed order line.
type OrderLineAddOn struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderLine freezes one cart line at checkout time: resolved display names
// and the unit price the customer actually paid.
type OrderLine struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	SpecID      uuid.UUID        `json:"spec_id"`
	SpecName    string           `json:"spec_name"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Quantity    int              `json:"quantity"`
	AddOns      []OrderLineAddOn `json:"add_ons,omitempty"`
	LineTotal   decimal.Decimal  `json:"line_total"`
}

// OrderLines is a slice marshaled as JSONB.
type OrderLines []OrderLine

// Value serializes the lines to JSON.
func (o OrderLines) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Scan decodes JSONB into the line slice.
func (o *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded OrderLines
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*o = decoded
	return nil
}

// OrderCoupon freezes the coupon applied to a placed order.
type OrderCoupon struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Discount decimal.Decimal `json:"discount"`
}

// Scan decodes JSONB into the coupon snapshot.
func (o *OrderCoupon) Scan(value interface{}) error {
	if value == nil {
		*o = OrderCoupon{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, o)
}

// OrderCustomer freezes the contact details collected at checkout. Address
// is only present on delivery orders.
type OrderCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Value serializes the customer snapshot to JSON.
func (o *OrderCustomer) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// Scan decodes JSONB into the customer snapshot.
func (o *OrderCustomer) Scan(value interface{}) error {
	if value == nil {
		*o = OrderCustomer{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, o)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
