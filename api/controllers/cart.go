package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hanamura/noodlehouse-backend/api/middleware"
	"github.com/hanamura/noodlehouse-backend/api/responses"
	"github.com/hanamura/noodlehouse-backend/api/validators"
	cartsvc "github.com/hanamura/noodlehouse-backend/internal/cart"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
)

// AddCartItemRequest is the payload to add one configuration to the cart.
// Prices are never accepted from the client; only identifiers are.
type AddCartItemRequest struct {
	ProductID uuid.UUID   `json:"productId" validate:"required"`
	SpecID    uuid.UUID   `json:"specId" validate:"required"`
	AddOnIDs  []uuid.UUID `json:"addOnIds,omitempty"`
	Quantity  int         `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest mutates one line: a new quantity, a selection
// toggle, or both.
type UpdateCartItemRequest struct {
	Quantity        *int `json:"quantity,omitempty" validate:"omitempty,min=1"`
	ToggleSelection bool `json:"toggleSelection,omitempty"`
}

// ApplyCouponRequest attaches a coupon to the cart.
type ApplyCouponRequest struct {
	CouponID uuid.UUID `json:"couponId" validate:"required"`
}

// PendingProductRequest stores the product hand-off consumed by the next
// cart read.
type PendingProductRequest struct {
	ProductID uuid.UUID   `json:"productId" validate:"required"`
	SpecID    uuid.UUID   `json:"specId" validate:"required"`
	AddOnIDs  []uuid.UUID `json:"addOnIds,omitempty"`
	Quantity  int         `json:"quantity" validate:"required,min=1"`
}

// CartFetch returns the cart for the order type, with totals.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderType(ctx, orderType.String())
		}

		view, err := svc.View(ctx, middleware.SessionIDFromContext(ctx), orderType, middleware.LanguageFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartAddItem adds or merges one configuration.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.AddItem(ctx, middleware.SessionIDFromContext(ctx), orderType, cartsvc.AddItemInput{
			ProductID: payload.ProductID,
			SpecID:    payload.SpecID,
			AddOnIDs:  payload.AddOnIDs,
			Quantity:  payload.Quantity,
			Language:  middleware.LanguageFromContext(ctx),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// CartUpdateItem changes a line's quantity or flips its selection.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID, err := validators.ParseUUIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil && !payload.ToggleSelection {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		ctx := r.Context()
		sessionID := middleware.SessionIDFromContext(ctx)

		var view *cartsvc.View
		if payload.Quantity != nil {
			view, err = svc.SetQuantity(ctx, sessionID, orderType, lineID, *payload.Quantity)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		if payload.ToggleSelection {
			view, err = svc.ToggleItem(ctx, sessionID, orderType, lineID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem deletes one line.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID, err := validators.ParseUUIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.RemoveItem(ctx, middleware.SessionIDFromContext(ctx), orderType, lineID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.Clear(ctx, middleware.SessionIDFromContext(ctx), orderType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartToggleAll selects every line, or deselects every line when all are
// already selected.
func CartToggleAll(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.ToggleAll(ctx, middleware.SessionIDFromContext(ctx), orderType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartApplyCoupon attaches a coupon after checking its eligibility.
func CartApplyCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ApplyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.ApplyCoupon(ctx, middleware.SessionIDFromContext(ctx), orderType, payload.CouponID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartRemoveCoupon detaches the applied coupon.
func CartRemoveCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		view, err := svc.RemoveCoupon(ctx, middleware.SessionIDFromContext(ctx), orderType)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartStashPending records the "order now" hand-off consumed by the next
// cart read.
func CartStashPending(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		orderType, err := validators.ParseOrderTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload PendingProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pending := cartsvc.PendingProduct{
			ProductID: payload.ProductID.String(),
			SpecID:    payload.SpecID.String(),
			Quantity:  payload.Quantity,
		}
		for _, id := range payload.AddOnIDs {
			pending.AddOnIDs = append(pending.AddOnIDs, id.String())
		}

		ctx := r.Context()
		if err := svc.StashPending(ctx, middleware.SessionIDFromContext(ctx), orderType, pending); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "stored"})
	}
}
