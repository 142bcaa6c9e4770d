package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hanamura/noodlehouse-backend/api/middleware"
	cartsvc "github.com/hanamura/noodlehouse-backend/internal/cart"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
)

type stubCartService struct {
	view        *cartsvc.View
	err         error
	gotSession  string
	gotType     enums.OrderType
	gotAdd      *cartsvc.AddItemInput
	gotCoupon   uuid.UUID
	gotPending  *cartsvc.PendingProduct
	toggledAll  bool
	clearedCart bool
}

func (s *stubCartService) View(ctx context.Context, sessionID string, orderType enums.OrderType, lang enums.Language) (*cartsvc.View, error) {
	s.gotSession = sessionID
	s.gotType = orderType
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, orderType enums.OrderType, input cartsvc.AddItemInput) (*cartsvc.View, error) {
	s.gotSession = sessionID
	s.gotType = orderType
	s.gotAdd = &input
	return s.view, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID, quantity int) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) ToggleItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) ToggleAll(ctx context.Context, sessionID string, orderType enums.OrderType) (*cartsvc.View, error) {
	s.toggledAll = true
	return s.view, s.err
}

func (s *stubCartService) ApplyCoupon(ctx context.Context, sessionID string, orderType enums.OrderType, couponID uuid.UUID) (*cartsvc.View, error) {
	s.gotCoupon = couponID
	return s.view, s.err
}

func (s *stubCartService) RemoveCoupon(ctx context.Context, sessionID string, orderType enums.OrderType) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string, orderType enums.OrderType) (*cartsvc.View, error) {
	s.clearedCart = true
	return s.view, s.err
}

func (s *stubCartService) StashPending(ctx context.Context, sessionID string, orderType enums.OrderType, pending cartsvc.PendingProduct) error {
	s.gotPending = &pending
	return s.err
}

func cartRequest(method, target, orderType, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderType", orderType)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithSessionID(ctx, "session-123")
	ctx = middleware.WithLanguage(ctx, enums.LanguageEN)
	return req.WithContext(ctx)
}

func sampleView() *cartsvc.View {
	return &cartsvc.View{
		Items: []cartsvc.Line{{
			ID:          uuid.New(),
			ProductID:   uuid.New(),
			ProductName: "Tonkotsu Ramen",
			SpecID:      uuid.New(),
			SpecName:    "Regular",
			UnitPrice:   decimal.NewFromInt(28),
			Quantity:    1,
			Selected:    true,
		}},
		AllSelected: true,
		Totals: pricing.Result{
			Subtotal:    decimal.NewFromInt(28),
			DeliveryFee: decimal.NewFromInt(6),
			Discount:    decimal.Zero,
			Total:       decimal.NewFromInt(34),
		},
	}
}

func TestCartFetchSuccess(t *testing.T) {
	svc := &stubCartService{view: sampleView()}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodGet, "/api/v1/cart/delivery", "delivery", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotSession != "session-123" {
		t.Fatalf("unexpected session id: %q", svc.gotSession)
	}
	if svc.gotType != enums.OrderTypeDelivery {
		t.Fatalf("unexpected order type: %s", svc.gotType)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Totals.Total.Equal(decimal.NewFromInt(34)) {
		t.Fatalf("unexpected total: %s", envelope.Data.Totals.Total)
	}
}

func TestCartFetchRejectsUnknownOrderType(t *testing.T) {
	svc := &stubCartService{view: sampleView()}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodGet, "/api/v1/cart/dinein", "dinein", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemPassesResolvedInput(t *testing.T) {
	svc := &stubCartService{view: sampleView()}
	handler := CartAddItem(svc, nil)

	productID := uuid.New()
	specID := uuid.New()
	body := `{"productId":"` + productID.String() + `","specId":"` + specID.String() + `","quantity":2}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/pickup/items", "pickup", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.gotAdd == nil {
		t.Fatal("expected AddItem to be called")
	}
	if svc.gotAdd.ProductID != productID || svc.gotAdd.SpecID != specID {
		t.Fatal("identifiers not forwarded")
	}
	if svc.gotAdd.Quantity != 2 {
		t.Fatalf("unexpected quantity: %d", svc.gotAdd.Quantity)
	}
	if svc.gotAdd.Language != enums.LanguageEN {
		t.Fatalf("unexpected language: %s", svc.gotAdd.Language)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	svc := &stubCartService{view: sampleView()}
	handler := CartAddItem(svc, nil)

	body := `{"productId":"` + uuid.NewString() + `","specId":"` + uuid.NewString() + `","quantity":0}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/delivery/items", "delivery", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.gotAdd != nil {
		t.Fatal("service should not be called for invalid payloads")
	}
}

func TestCartUpdateItemRequiresSomeChange(t *testing.T) {
	svc := &stubCartService{view: sampleView()}
	handler := CartUpdateItem(svc, nil)

	req := cartRequest(http.MethodPatch, "/api/v1/cart/delivery/items/x", "delivery", `{}`)
	rctx := chi.RouteContext(req.Context())
	rctx.URLParams.Add("lineId", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartApplyCouponInapplicable(t *testing.T) {
	svc := &stubCartService{err: &pricing.CouponError{Reason: pricing.ReasonBelowMinimum}}
	handler := CartApplyCoupon(svc, nil)

	couponID := uuid.New()
	body := `{"couponId":"` + couponID.String() + `"}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/delivery/coupon", "delivery", body))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if svc.gotCoupon != couponID {
		t.Fatal("coupon id not forwarded")
	}

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeCouponInapplicable) {
		t.Fatalf("unexpected error code: %s", envelope.Error.Code)
	}
	if envelope.Error.Details["reason"] != string(pricing.ReasonBelowMinimum) {
		t.Fatalf("unexpected reason: %v", envelope.Error.Details["reason"])
	}
}

func TestCartStashPendingStoresHandOff(t *testing.T) {
	svc := &stubCartService{}
	handler := CartStashPending(svc, nil)

	productID := uuid.New()
	specID := uuid.New()
	addOnID := uuid.New()
	body := `{"productId":"` + productID.String() + `","specId":"` + specID.String() + `","addOnIds":["` + addOnID.String() + `"],"quantity":1}`

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartRequest(http.MethodPost, "/api/v1/cart/pickup/pending", "pickup", body))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}
	if svc.gotPending == nil {
		t.Fatal("expected pending product to be stored")
	}
	if svc.gotPending.ProductID != productID.String() {
		t.Fatal("product id not forwarded")
	}
	if len(svc.gotPending.AddOnIDs) != 1 || svc.gotPending.AddOnIDs[0] != addOnID.String() {
		t.Fatal("add-on ids not forwarded")
	}
}
