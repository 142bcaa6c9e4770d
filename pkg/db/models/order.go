package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/hanamura/noodlehouse-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Order is a placed order with its line items frozen as JSON at checkout
// time, so later catalog edits never rewrite history.
type Order struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber  string               `gorm:"column:order_number;not null;uniqueIndex"`
	PickupNumber *string              `gorm:"column:pickup_number"`
	SessionID    string               `gorm:"column:session_id;not null"`
	OrderType    enums.OrderType      `gorm:"column:order_type;type:order_type;not null"`
	Items        types.OrderLines     `gorm:"column:items;type:jsonb;serializer:json"`
	Coupon       *types.OrderCoupon   `gorm:"column:coupon;type:jsonb;serializer:json"`
	Customer     *types.OrderCustomer `gorm:"column:customer;type:jsonb;serializer:json"`
	Subtotal     decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null;default:0"`
	DeliveryFee  decimal.Decimal      `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	Discount     decimal.Decimal      `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	Total        decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	PlacedAt     time.Time            `gorm:"column:placed_at;not null"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
