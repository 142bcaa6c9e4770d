package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/catalog"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type memStore struct {
	carts   map[string]*Cart
	pending map[string]*PendingProduct
	saves   int
}

func newMemStore() *memStore {
	return &memStore{carts: map[string]*Cart{}, pending: map[string]*PendingProduct{}}
}

func storeKey(sessionID string, orderType enums.OrderType) string {
	return sessionID + "/" + orderType.String()
}

func (m *memStore) Load(_ context.Context, sessionID string, orderType enums.OrderType) (*Cart, error) {
	if c, ok := m.carts[storeKey(sessionID, orderType)]; ok {
		clone := *c
		return &clone, nil
	}
	return &Cart{}, nil
}

func (m *memStore) Save(_ context.Context, sessionID string, orderType enums.OrderType, cart *Cart) error {
	clone := *cart
	m.carts[storeKey(sessionID, orderType)] = &clone
	m.saves++
	return nil
}

func (m *memStore) TakePending(_ context.Context, sessionID string, orderType enums.OrderType) (*PendingProduct, error) {
	key := storeKey(sessionID, orderType)
	p := m.pending[key]
	delete(m.pending, key)
	return p, nil
}

func (m *memStore) SetPending(_ context.Context, sessionID string, orderType enums.OrderType, pending PendingProduct) error {
	m.pending[storeKey(sessionID, orderType)] = &pending
	return nil
}

type stubResolver struct {
	selection *catalog.Selection
	err       error
}

func (s *stubResolver) ResolveSelection(context.Context, catalog.SelectionInput) (*catalog.Selection, error) {
	return s.selection, s.err
}

type stubCoupons struct {
	coupon *pricing.Coupon
	err    error
}

func (s *stubCoupons) GetByID(context.Context, uuid.UUID) (*pricing.Coupon, error) {
	return s.coupon, s.err
}

func testConfig() pricing.Config {
	return pricing.Config{
		FreeDeliveryThreshold: decimal.RequireFromString("30"),
		FlatDeliveryFee:       decimal.RequireFromString("6"),
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	}
}

func testSelection() *catalog.Selection {
	return &catalog.Selection{
		ProductID:   uuid.New(),
		ProductName: "Signature Tonkotsu Ramen",
		SpecID:      uuid.New(),
		SpecName:    "Regular",
		UnitPrice:   decimal.RequireFromString("28"),
	}
}

func newTestService(t *testing.T, store cartStore, resolver selectionResolver, coupons couponLoader) Service {
	t.Helper()
	svc, err := NewService(store, resolver, coupons, testConfig(), fixedClock())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddItemResolvesAndQuotes(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, &stubResolver{selection: testSelection()}, &stubCoupons{})

	view, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{
		ProductID: uuid.New(),
		SpecID:    uuid.New(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductName != "Signature Tonkotsu Ramen" {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
	// 28 is under the 30 free-delivery threshold, so the flat fee applies.
	if !view.Totals.Subtotal.Equal(decimal.RequireFromString("28")) {
		t.Fatalf("subtotal = %s", view.Totals.Subtotal)
	}
	if !view.Totals.DeliveryFee.Equal(decimal.RequireFromString("6")) {
		t.Fatalf("delivery fee = %s", view.Totals.DeliveryFee)
	}
	if !view.Totals.Total.Equal(decimal.RequireFromString("34")) {
		t.Fatalf("total = %s", view.Totals.Total)
	}
	if store.saves != 1 {
		t.Fatalf("expected 1 save, got %d", store.saves)
	}
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), &stubResolver{selection: testSelection()}, &stubCoupons{})

	_, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypePickup, AddItemInput{Quantity: 0})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartsAreKeyedByOrderType(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, &stubResolver{selection: testSelection()}, &stubCoupons{})

	if _, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	pickup, err := svc.View(context.Background(), "sess-1", enums.OrderTypePickup, enums.LanguageZH)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(pickup.Items) != 0 {
		t.Fatalf("pickup cart should be empty, got %+v", pickup.Items)
	}
}

func TestPickupCartHasNoDeliveryFee(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), &stubResolver{selection: testSelection()}, &stubCoupons{})

	view, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypePickup, AddItemInput{Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if !view.Totals.DeliveryFee.IsZero() {
		t.Fatalf("pickup delivery fee = %s, want 0", view.Totals.DeliveryFee)
	}
}

func TestSetQuantityBelowOneIsNoOp(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, &stubResolver{selection: testSelection()}, &stubCoupons{})

	added, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	view, err := svc.SetQuantity(context.Background(), "sess-1", enums.OrderTypeDelivery, added.Items[0].ID, 0)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", view.Items[0].Quantity)
	}
}

func TestSetQuantityUnknownLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), &stubResolver{selection: testSelection()}, &stubCoupons{})

	_, err := svc.SetQuantity(context.Background(), "sess-1", enums.OrderTypeDelivery, uuid.New(), 3)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestApplyCouponEligibleAndIneligible(t *testing.T) {
	t.Parallel()

	coupon := &pricing.Coupon{
		ID:             uuid.New(),
		Code:           "RAMEN10",
		Type:           enums.CouponTypeFixed,
		Value:          decimal.RequireFromString("10"),
		MinOrderAmount: decimal.RequireFromString("50"),
		ExpiryDate:     pricing.MustParseDate("2025-12-31"),
	}
	store := newMemStore()
	svc := newTestService(t, store, &stubResolver{selection: testSelection()}, &stubCoupons{coupon: coupon})

	// 28 < 50 minimum.
	if _, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	_, err := svc.ApplyCoupon(context.Background(), "sess-1", enums.OrderTypeDelivery, coupon.ID)
	var couponErr *pricing.CouponError
	if !errors.As(err, &couponErr) || couponErr.Reason != pricing.ReasonBelowMinimum {
		t.Fatalf("expected below-minimum, got %v", err)
	}

	// 84 >= 50, so the coupon applies and discounts the total.
	if _, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	view, err := svc.ApplyCoupon(context.Background(), "sess-1", enums.OrderTypeDelivery, coupon.ID)
	if err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}
	if !view.Totals.Discount.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("discount = %s, want 10", view.Totals.Discount)
	}
	if !view.Totals.Total.Equal(decimal.RequireFromString("74")) {
		t.Fatalf("total = %s, want 74", view.Totals.Total)
	}
}

func TestRemoveCouponZeroesDiscount(t *testing.T) {
	t.Parallel()

	coupon := &pricing.Coupon{
		ID:             uuid.New(),
		Code:           "NEWUSER20",
		Type:           enums.CouponTypePercentage,
		Value:          decimal.RequireFromString("0.2"),
		MinOrderAmount: decimal.RequireFromString("30"),
		ExpiryDate:     pricing.MustParseDate("2025-11-30"),
	}
	svc := newTestService(t, newMemStore(), &stubResolver{selection: testSelection()}, &stubCoupons{coupon: coupon})

	if _, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypePickup, AddItemInput{Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	applied, err := svc.ApplyCoupon(context.Background(), "sess-1", enums.OrderTypePickup, coupon.ID)
	if err != nil {
		t.Fatalf("ApplyCoupon: %v", err)
	}
	if !applied.Totals.Discount.Equal(decimal.RequireFromString("11.2")) {
		t.Fatalf("discount = %s, want 11.2", applied.Totals.Discount)
	}

	removed, err := svc.RemoveCoupon(context.Background(), "sess-1", enums.OrderTypePickup)
	if err != nil {
		t.Fatalf("RemoveCoupon: %v", err)
	}
	if removed.Coupon != nil || !removed.Totals.Discount.IsZero() {
		t.Fatalf("coupon not removed: %+v", removed)
	}
}

func TestViewConsumesPendingProductOnce(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	selection := testSelection()
	svc := newTestService(t, store, &stubResolver{selection: selection}, &stubCoupons{})

	err := svc.StashPending(context.Background(), "sess-1", enums.OrderTypePickup, PendingProduct{
		ProductID: selection.ProductID.String(),
		SpecID:    selection.SpecID.String(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("StashPending: %v", err)
	}

	first, err := svc.View(context.Background(), "sess-1", enums.OrderTypePickup, enums.LanguageZH)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(first.Items) != 1 {
		t.Fatalf("pending product not folded in: %+v", first.Items)
	}

	second, err := svc.View(context.Background(), "sess-1", enums.OrderTypePickup, enums.LanguageZH)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(second.Items) != 1 || second.Items[0].Quantity != 1 {
		t.Fatalf("pending product applied twice: %+v", second.Items)
	}
}

func TestToggleAllRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, &stubResolver{selection: testSelection()}, &stubCoupons{})

	if _, err := svc.AddItem(context.Background(), "sess-1", enums.OrderTypeDelivery, AddItemInput{Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	deselected, err := svc.ToggleAll(context.Background(), "sess-1", enums.OrderTypeDelivery)
	if err != nil {
		t.Fatalf("ToggleAll: %v", err)
	}
	if deselected.AllSelected || !deselected.Totals.Subtotal.IsZero() {
		t.Fatalf("expected everything deselected: %+v", deselected)
	}

	reselected, err := svc.ToggleAll(context.Background(), "sess-1", enums.OrderTypeDelivery)
	if err != nil {
		t.Fatalf("ToggleAll: %v", err)
	}
	if !reselected.AllSelected || reselected.Totals.Subtotal.IsZero() {
		t.Fatalf("expected everything selected: %+v", reselected)
	}
}
