package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/catalog"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
)

// Service exposes all cart mutations. Every mutation persists the cart and
// returns the fresh view with recomputed totals.
type Service interface {
	View(ctx context.Context, sessionID string, orderType enums.OrderType, lang enums.Language) (*View, error)
	AddItem(ctx context.Context, sessionID string, orderType enums.OrderType, input AddItemInput) (*View, error)
	SetQuantity(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*View, error)
	ToggleItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*View, error)
	ToggleAll(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error)
	ApplyCoupon(ctx context.Context, sessionID string, orderType enums.OrderType, couponID uuid.UUID) (*View, error)
	RemoveCoupon(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error)
	Clear(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error)
	StashPending(ctx context.Context, sessionID string, orderType enums.OrderType, pending PendingProduct) error
}

// AddItemInput is the validated payload to add one configuration to the cart.
type AddItemInput struct {
	ProductID uuid.UUID
	SpecID    uuid.UUID
	AddOnIDs  []uuid.UUID
	Quantity  int
	Language  enums.Language
}

// View is the cart plus its price breakdown, as returned to clients.
type View struct {
	Items       []Line          `json:"items"`
	Coupon      *pricing.Coupon `json:"coupon,omitempty"`
	AllSelected bool            `json:"allSelected"`
	Totals      pricing.Result  `json:"totals"`
}

type selectionResolver interface {
	ResolveSelection(ctx context.Context, input catalog.SelectionInput) (*catalog.Selection, error)
}

type couponLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*pricing.Coupon, error)
}

type cartStore interface {
	Load(ctx context.Context, sessionID string, orderType enums.OrderType) (*Cart, error)
	Save(ctx context.Context, sessionID string, orderType enums.OrderType, cart *Cart) error
	TakePending(ctx context.Context, sessionID string, orderType enums.OrderType) (*PendingProduct, error)
	SetPending(ctx context.Context, sessionID string, orderType enums.OrderType, pending PendingProduct) error
}

type service struct {
	store   cartStore
	catalog selectionResolver
	coupons couponLoader
	cfg     pricing.Config
	now     func() time.Time
}

// NewService wires the cart service. The clock is injectable for expiry
// tests; pass nil for time.Now.
func NewService(store cartStore, resolver selectionResolver, coupons couponLoader, cfg pricing.Config, now func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("catalog resolver is required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon loader is required")
	}
	if cfg.FlatDeliveryFee.IsNegative() || cfg.FreeDeliveryThreshold.IsNegative() {
		return nil, fmt.Errorf("pricing config must be non-negative")
	}
	if now == nil {
		now = time.Now
	}
	return &service{store: store, catalog: resolver, coupons: coupons, cfg: cfg, now: now}, nil
}

func (s *service) today() pricing.Date {
	return pricing.DateOf(s.now())
}

func (s *service) view(cart *Cart, orderType enums.OrderType) *View {
	result := pricing.Quote(pricing.Snapshot{
		Items:     cart.PricingItems(),
		Coupon:    cart.Coupon,
		OrderType: orderType,
	}, s.cfg, s.today())
	items := cart.Items
	if items == nil {
		items = []Line{}
	}
	return &View{
		Items:       items,
		Coupon:      cart.Coupon,
		AllSelected: len(cart.Items) > 0 && cart.AllSelected(),
		Totals:      result,
	}
}

// View loads the cart, folds in any pending product hand-off, and quotes it.
func (s *service) View(ctx context.Context, sessionID string, orderType enums.OrderType, lang enums.Language) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID, orderType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	pending, err := s.store.TakePending(ctx, sessionID, orderType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "take pending product")
	}
	if pending != nil {
		if input, convErr := pendingToInput(pending, lang); convErr == nil {
			// A stale hand-off pointing at a removed product is dropped
			// rather than failing the cart read.
			if line, resolveErr := s.resolveLine(ctx, input); resolveErr == nil {
				cart.AddOrMerge(*line)
			}
		}
		if err := s.store.Save(ctx, sessionID, orderType, cart); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
		}
	}

	return s.view(cart, orderType), nil
}

// AddItem resolves the selection against the catalog and merges it in.
func (s *service) AddItem(ctx context.Context, sessionID string, orderType enums.OrderType, input AddItemInput) (*View, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	line, err := s.resolveLine(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		cart.AddOrMerge(*line)
		return nil
	})
}

// SetQuantity replaces a line's quantity. Quantities below one leave the
// cart untouched.
func (s *service) SetQuantity(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID, quantity int) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		if quantity < 1 {
			return nil
		}
		if !cart.SetQuantity(lineID, quantity) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil
	})
}

// RemoveItem deletes a line.
func (s *service) RemoveItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		if !cart.RemoveLine(lineID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil
	})
}

// ToggleItem flips a line's selection.
func (s *service) ToggleItem(ctx context.Context, sessionID string, orderType enums.OrderType, lineID uuid.UUID) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		if !cart.ToggleLine(lineID) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil
	})
}

// ToggleAll selects every line, or deselects every line when all are
// already selected.
func (s *service) ToggleAll(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		cart.ToggleAll()
		return nil
	})
}

// ApplyCoupon checks the coupon against the current selected subtotal and
// attaches it. Ineligible coupons surface a CouponError.
func (s *service) ApplyCoupon(ctx context.Context, sessionID string, orderType enums.OrderType, couponID uuid.UUID) (*View, error) {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		return cart.ApplyCoupon(*coupon, s.today())
	})
}

// RemoveCoupon detaches the applied coupon.
func (s *service) RemoveCoupon(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		cart.RemoveCoupon()
		return nil
	})
}

// Clear empties the cart, dropping lines and any applied coupon.
func (s *service) Clear(ctx context.Context, sessionID string, orderType enums.OrderType) (*View, error) {
	return s.mutate(ctx, sessionID, orderType, func(cart *Cart) error {
		cart.Items = nil
		cart.Coupon = nil
		return nil
	})
}

// StashPending records a product hand-off to be folded into the next cart
// read.
func (s *service) StashPending(ctx context.Context, sessionID string, orderType enums.OrderType, pending PendingProduct) error {
	if err := s.store.SetPending(ctx, sessionID, orderType, pending); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stash pending product")
	}
	return nil
}

func (s *service) mutate(ctx context.Context, sessionID string, orderType enums.OrderType, fn func(cart *Cart) error) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID, orderType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, orderType, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return s.view(cart, orderType), nil
}

func (s *service) resolveLine(ctx context.Context, input AddItemInput) (*Line, error) {
	selection, err := s.catalog.ResolveSelection(ctx, catalog.SelectionInput{
		ProductID: input.ProductID,
		SpecID:    input.SpecID,
		AddOnIDs:  input.AddOnIDs,
		Language:  input.Language,
	})
	if err != nil {
		return nil, err
	}
	line := &Line{
		ProductID:   selection.ProductID,
		ProductName: selection.ProductName,
		Image:       selection.Image,
		SpecID:      selection.SpecID,
		SpecName:    selection.SpecName,
		UnitPrice:   selection.UnitPrice,
		Quantity:    input.Quantity,
		Selected:    true,
	}
	for _, a := range selection.AddOns {
		line.AddOns = append(line.AddOns, AddOn{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return line, nil
}

func pendingToInput(pending *PendingProduct, lang enums.Language) (AddItemInput, error) {
	productID, err := uuid.Parse(pending.ProductID)
	if err != nil {
		return AddItemInput{}, fmt.Errorf("parse product id: %w", err)
	}
	specID, err := uuid.Parse(pending.SpecID)
	if err != nil {
		return AddItemInput{}, fmt.Errorf("parse spec id: %w", err)
	}
	input := AddItemInput{
		ProductID: productID,
		SpecID:    specID,
		Quantity:  pending.Quantity,
		Language:  lang,
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}
	for _, raw := range pending.AddOnIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return AddItemInput{}, fmt.Errorf("parse add-on id: %w", err)
		}
		input.AddOnIDs = append(input.AddOnIDs, id)
	}
	return input, nil
}
