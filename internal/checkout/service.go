package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/cart"
	"github.com/hanamura/noodlehouse-backend/internal/orders"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/hanamura/noodlehouse-backend/pkg/types"
	"gorm.io/gorm"
)

// Service places orders: it freezes the selected cart lines, consumes the
// applied coupon, persists the order and leaves a confirmation snapshot in
// Redis.
type Service interface {
	PlaceOrder(ctx context.Context, sessionID string, orderType enums.OrderType, input PlaceOrderInput) (*orders.OrderDTO, error)
}

// PlaceOrderInput is the validated checkout payload.
type PlaceOrderInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

type cartAccess interface {
	Load(ctx context.Context, sessionID string, orderType enums.OrderType) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, orderType enums.OrderType, c *cart.Cart) error
}

type couponMarker interface {
	MarkUsed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type orderWriter interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
}

type transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type snapshotWriter interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	CurrentOrderKey(sessionID string) string
	CounterKey(name string) string
}

type service struct {
	carts       cartAccess
	coupons     couponMarker
	orders      orderWriter
	tx          transactor
	kv          snapshotWriter
	cfg         pricing.Config
	snapshotTTL time.Duration
	now         func() time.Time
}

// NewService wires the checkout service. The clock stamps placement time and
// drives order numbering; pass nil for time.Now.
func NewService(carts cartAccess, coupons couponMarker, orderRepo orderWriter, tx transactor, kv snapshotWriter, cfg pricing.Config, snapshotTTL time.Duration, now func() time.Time) (Service, error) {
	if carts == nil || coupons == nil || orderRepo == nil || tx == nil || kv == nil {
		return nil, fmt.Errorf("checkout dependencies are incomplete")
	}
	if snapshotTTL <= 0 {
		return nil, fmt.Errorf("snapshot TTL must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		carts:       carts,
		coupons:     coupons,
		orders:      orderRepo,
		tx:          tx,
		kv:          kv,
		cfg:         cfg,
		snapshotTTL: snapshotTTL,
		now:         now,
	}, nil
}

// PlaceOrder checks out the selected lines of the session's cart for the
// given order type. The ordered lines leave the cart; deselected lines stay
// behind for a later purchase.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, orderType enums.OrderType, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if err := validateInput(orderType, input); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx, sessionID, orderType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	selected := c.SelectedLines()
	if len(selected) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected for checkout")
	}

	placedAt := s.now()
	today := pricing.DateOf(placedAt)

	// Re-check the coupon at the moment of purchase. A coupon that went
	// stale while the cart sat around is rejected here, not silently
	// ignored: the customer believes it is applied.
	if c.Coupon != nil {
		subtotal := pricing.Subtotal(c.PricingItems())
		if err := pricing.CheckCoupon(*c.Coupon, subtotal, today); err != nil {
			return nil, err
		}
	}

	quote := pricing.Quote(pricing.Snapshot{
		Items:     c.PricingItems(),
		Coupon:    c.Coupon,
		OrderType: orderType,
	}, s.cfg, today)

	orderNumber, pickupNumber, err := s.assignNumbers(ctx, orderType, placedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order number")
	}

	order := &models.Order{
		OrderNumber:  orderNumber,
		PickupNumber: pickupNumber,
		SessionID:    sessionID,
		OrderType:    orderType,
		Items:        freezeLines(selected),
		Subtotal:     quote.Subtotal,
		DeliveryFee:  quote.DeliveryFee,
		Discount:     quote.Discount,
		Total:        quote.Total,
		PlacedAt:     placedAt,
		Customer:     freezeCustomer(input),
	}
	if c.Coupon != nil {
		order.Coupon = &types.OrderCoupon{
			ID:       c.Coupon.ID,
			Code:     c.Coupon.Code,
			Type:     c.Coupon.Type.String(),
			Value:    c.Coupon.Value,
			Discount: quote.Discount,
		}
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if c.Coupon != nil {
			if err := s.coupons.MarkUsed(ctx, tx, c.Coupon.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &pricing.CouponError{Reason: pricing.ReasonUsed}
				}
				return err
			}
		}
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		var couponErr *pricing.CouponError
		if errors.As(err, &couponErr) {
			return nil, couponErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The ordered lines leave the cart; failures past this point must not
	// undo a placed order, so they only log upstream.
	remaining := &cart.Cart{}
	for _, line := range c.Items {
		if !line.Selected {
			remaining.Items = append(remaining.Items, line)
		}
	}
	if err := s.carts.Save(ctx, sessionID, orderType, remaining); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "trim cart after checkout")
	}

	dto := orders.ToDTO(order, placedAt)
	raw, err := json.Marshal(dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode confirmation snapshot")
	}
	if err := s.kv.Set(ctx, s.kv.CurrentOrderKey(sessionID), raw, s.snapshotTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write confirmation snapshot")
	}

	return &dto, nil
}

// assignNumbers derives the public order number from a daily counter, in the
// R<yyyymmdd><seq> shape receipts use, plus a short pickup number for
// counter calls.
func (s *service) assignNumbers(ctx context.Context, orderType enums.OrderType, placedAt time.Time) (string, *string, error) {
	day := placedAt.Format("20060102")
	seq, err := s.kv.Incr(ctx, s.kv.CounterKey("orders:"+day), 48*time.Hour)
	if err != nil {
		return "", nil, err
	}
	orderNumber := fmt.Sprintf("R%s%03d", day, seq)

	if orderType != enums.OrderTypePickup {
		return orderNumber, nil, nil
	}
	pickupSeq, err := s.kv.Incr(ctx, s.kv.CounterKey("pickup:"+day), 48*time.Hour)
	if err != nil {
		return "", nil, err
	}
	pickup := fmt.Sprintf("A%02d", pickupSeq)
	return orderNumber, &pickup, nil
}

func validateInput(orderType enums.OrderType, input PlaceOrderInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if orderType == enums.OrderTypeDelivery && strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required for delivery")
	}
	return nil
}

func freezeLines(lines []cart.Line) types.OrderLines {
	out := make(types.OrderLines, 0, len(lines))
	for _, line := range lines {
		frozen := types.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SpecID:      line.SpecID,
			SpecName:    line.SpecName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		}
		for _, a := range line.AddOns {
			frozen.AddOns = append(frozen.AddOns, types.OrderLineAddOn{ID: a.ID, Name: a.Name, Price: a.Price})
		}
		item := pricing.LineItem{
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Selected:  true,
		}
		for _, a := range line.AddOns {
			item.AddOns = append(item.AddOns, pricing.AddOn{ID: a.ID, Price: a.Price})
		}
		frozen.LineTotal = item.EffectivePrice()
		out = append(out, frozen)
	}
	return out
}

func freezeCustomer(input PlaceOrderInput) *types.OrderCustomer {
	return &types.OrderCustomer{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
	}
}
