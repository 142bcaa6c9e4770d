package orders

import (
	"time"

	"github.com/hanamura/noodlehouse-backend/pkg/enums"
)

// Fulfillment is simulated: no kitchen system feeds us real state, so the
// shown status is a pure function of time since placement.
const (
	preparingWindow = 10 * time.Minute
	transitWindow   = 30 * time.Minute
)

// StatusAt returns the simulated fulfillment status of an order at the given
// instant. Delivery orders pass through a transit phase; pickup orders wait
// at the counter instead.
func StatusAt(orderType enums.OrderType, placedAt, now time.Time) enums.OrderStatus {
	elapsed := now.Sub(placedAt)
	switch {
	case elapsed < preparingWindow:
		return enums.OrderStatusPreparing
	case elapsed < transitWindow:
		if orderType == enums.OrderTypeDelivery {
			return enums.OrderStatusDelivering
		}
		return enums.OrderStatusReady
	default:
		return enums.OrderStatusCompleted
	}
}

// EstimatedReadyAt returns when the order leaves the kitchen in the
// simulation.
func EstimatedReadyAt(placedAt time.Time) time.Time {
	return placedAt.Add(preparingWindow)
}
