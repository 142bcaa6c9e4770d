package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	redisclient "github.com/hanamura/noodlehouse-backend/pkg/redis"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	orders []models.Order
	err    error
}

func (s *stubRepo) ListBySession(context.Context, string) ([]models.Order, error) {
	return s.orders, s.err
}

type stubKV struct {
	values map[string]string
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", redisclient.Nil
	}
	return v, nil
}

func (s *stubKV) CurrentOrderKey(sessionID string) string {
	return "nh:current_order:" + sessionID
}

func TestListComputesStatusPerOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{orders: []models.Order{
		{
			ID:          uuid.New(),
			OrderNumber: "R20250901002",
			OrderType:   enums.OrderTypePickup,
			Total:       decimal.RequireFromString("28"),
			PlacedAt:    now.Add(-15 * time.Minute),
		},
		{
			ID:          uuid.New(),
			OrderNumber: "R20250901001",
			OrderType:   enums.OrderTypeDelivery,
			Total:       decimal.RequireFromString("62"),
			PlacedAt:    now.Add(-2 * time.Hour),
		},
	}}

	svc, err := NewService(repo, &stubKV{values: map[string]string{}}, func() time.Time { return now })
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, enums.OrderStatusReady, got[0].Status)
	require.Equal(t, enums.OrderStatusCompleted, got[1].Status)
	require.Equal(t, "R20250901002", got[0].OrderNumber)
}

func TestCurrentReadsSnapshotAndRefreshesStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	snapshot := OrderDTO{
		ID:          uuid.New(),
		OrderNumber: "R20250901003",
		OrderType:   enums.OrderTypeDelivery,
		Status:      enums.OrderStatusPreparing,
		PlacedAt:    now.Add(-20 * time.Minute),
	}
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	kv := &stubKV{values: map[string]string{"nh:current_order:sess-1": string(raw)}}
	svc, err := NewService(&stubRepo{}, kv, func() time.Time { return now })
	require.NoError(t, err)

	got, err := svc.Current(context.Background(), "sess-1")
	require.NoError(t, err)
	// The stored status is stale; 20 minutes in, a delivery is in transit.
	require.Equal(t, enums.OrderStatusDelivering, got.Status)
	require.Equal(t, snapshot.OrderNumber, got.OrderNumber)
}

func TestCurrentWithoutSnapshot(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, &stubKV{values: map[string]string{}}, nil)
	require.NoError(t, err)

	_, err = svc.Current(context.Background(), "sess-1")
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
