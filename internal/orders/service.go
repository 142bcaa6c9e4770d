package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	redisclient "github.com/hanamura/noodlehouse-backend/pkg/redis"
	"github.com/hanamura/noodlehouse-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// Service exposes order history and the current-order snapshot.
type Service interface {
	List(ctx context.Context, sessionID string) ([]OrderDTO, error)
	Current(ctx context.Context, sessionID string) (*OrderDTO, error)
}

// OrderDTO is the API shape of a placed order. Status is simulated from
// elapsed time, never stored.
type OrderDTO struct {
	ID               uuid.UUID            `json:"id"`
	OrderNumber      string               `json:"orderNumber"`
	PickupNumber     *string              `json:"pickupNumber,omitempty"`
	OrderType        enums.OrderType      `json:"orderType"`
	Status           enums.OrderStatus    `json:"status"`
	Items            types.OrderLines     `json:"items"`
	Coupon           *types.OrderCoupon   `json:"coupon,omitempty"`
	Customer         *types.OrderCustomer `json:"customer,omitempty"`
	Subtotal         decimal.Decimal      `json:"subtotal"`
	DeliveryFee      decimal.Decimal      `json:"deliveryFee"`
	Discount         decimal.Decimal      `json:"discount"`
	Total            decimal.Decimal      `json:"total"`
	PlacedAt         time.Time            `json:"placedAt"`
	EstimatedReadyAt time.Time            `json:"estimatedReadyAt"`
}

type orderRepo interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.Order, error)
}

type snapshotReader interface {
	Get(ctx context.Context, key string) (string, error)
	CurrentOrderKey(sessionID string) string
}

type service struct {
	repo orderRepo
	kv   snapshotReader
	now  func() time.Time
}

// NewService wires the orders service. The clock drives the simulated
// status; pass nil for time.Now.
func NewService(repo orderRepo, kv snapshotReader, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if kv == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, kv: kv, now: now}, nil
}

// List returns the session's order history, newest first.
func (s *service) List(ctx context.Context, sessionID string) ([]OrderDTO, error) {
	rows, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	now := s.now()
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ToDTO(&rows[i], now))
	}
	return out, nil
}

// Current returns the order placed in this session's latest checkout, read
// from the confirmation snapshot.
func (s *service) Current(ctx context.Context, sessionID string) (*OrderDTO, error) {
	raw, err := s.kv.Get(ctx, s.kv.CurrentOrderKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no current order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current order")
	}
	var dto OrderDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no current order")
	}
	now := s.now()
	dto.Status = StatusAt(dto.OrderType, dto.PlacedAt, now)
	return &dto, nil
}

// ToDTO maps an order row to the API shape, computing the simulated status
// as of now.
func ToDTO(row *models.Order, now time.Time) OrderDTO {
	return OrderDTO{
		ID:               row.ID,
		OrderNumber:      row.OrderNumber,
		PickupNumber:     row.PickupNumber,
		OrderType:        row.OrderType,
		Status:           StatusAt(row.OrderType, row.PlacedAt, now),
		Items:            row.Items,
		Coupon:           row.Coupon,
		Customer:         row.Customer,
		Subtotal:         row.Subtotal,
		DeliveryFee:      row.DeliveryFee,
		Discount:         row.Discount,
		Total:            row.Total,
		PlacedAt:         row.PlacedAt,
		EstimatedReadyAt: EstimatedReadyAt(row.PlacedAt),
	}
}
