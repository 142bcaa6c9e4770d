package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	redisclient "github.com/hanamura/noodlehouse-backend/pkg/redis"
)

// PendingProduct is the hand-off written when a guest taps "order now" on a
// product page before landing on the cart. It is consumed exactly once.
type PendingProduct struct {
	ProductID string   `json:"product_id"`
	SpecID    string   `json:"spec_id"`
	AddOnIDs  []string `json:"add_on_ids,omitempty"`
	Quantity  int      `json:"quantity"`
}

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID, orderType string) string
	PendingProductKey(sessionID, orderType string) string
}

// Store persists carts in Redis, one key per session and order type. A
// missing key reads back as an empty cart.
type Store struct {
	kv         kvStore
	cartTTL    time.Duration
	pendingTTL time.Duration
}

// NewStore wires the cart store against the Redis client.
func NewStore(kv kvStore, cartTTL, pendingTTL time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cartTTL <= 0 || pendingTTL <= 0 {
		return nil, fmt.Errorf("cart and pending TTLs must be positive")
	}
	return &Store{kv: kv, cartTTL: cartTTL, pendingTTL: pendingTTL}, nil
}

// Load reads the cart for the session and order type. Absent or unreadable
// snapshots come back as an empty cart; a corrupt snapshot is not worth
// failing a request over.
func (s *Store) Load(ctx context.Context, sessionID string, orderType enums.OrderType) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID, orderType.String()))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return &Cart{}, nil
	}
	return &cart, nil
}

// Save writes the cart snapshot, refreshing its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, orderType enums.OrderType, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID, orderType.String()), raw, s.cartTTL); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear deletes the cart snapshot.
func (s *Store) Clear(ctx context.Context, sessionID string, orderType enums.OrderType) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID, orderType.String())); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// SetPending stores the product hand-off for the session.
func (s *Store) SetPending(ctx context.Context, sessionID string, orderType enums.OrderType, pending PendingProduct) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode pending product: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.PendingProductKey(sessionID, orderType.String()), raw, s.pendingTTL); err != nil {
		return fmt.Errorf("save pending product: %w", err)
	}
	return nil
}

// TakePending reads and atomically deletes the product hand-off. It returns
// nil when nothing is pending.
func (s *Store) TakePending(ctx context.Context, sessionID string, orderType enums.OrderType) (*PendingProduct, error) {
	raw, err := s.kv.GetDel(ctx, s.kv.PendingProductKey(sessionID, orderType.String()))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("take pending product: %w", err)
	}
	var pending PendingProduct
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, nil
	}
	return &pending, nil
}
