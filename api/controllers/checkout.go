package controllers

import (
	"net/http"

	"github.com/hanamura/noodlehouse-backend/api/middleware"
	"github.com/hanamura/noodlehouse-backend/api/responses"
	"github.com/hanamura/noodlehouse-backend/api/validators"
	"github.com/hanamura/noodlehouse-backend/internal/checkout"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
)

// PlaceOrderRequest is the checkout payload. Address is only required for
// delivery orders, which the service enforces.
type PlaceOrderRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// CheckoutPlaceOrder freezes the selected cart lines into an order and
// returns the confirmation.
func CheckoutPlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload PlaceOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderType(ctx, orderType.String())
		}

		order, err := svc.PlaceOrder(ctx, middleware.SessionIDFromContext(ctx), orderType, checkout.PlaceOrderInput{
			Name:    payload.Name,
			Phone:   payload.Phone,
			Email:   payload.Email,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
