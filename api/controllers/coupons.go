package controllers

import (
	"net/http"

	"github.com/hanamura/noodlehouse-backend/api/middleware"
	"github.com/hanamura/noodlehouse-backend/api/responses"
	"github.com/hanamura/noodlehouse-backend/internal/coupons"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
)

// CouponsAvailable lists unused, unexpired coupons. A coupon expiring today
// is still included.
func CouponsAvailable(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		available, err := svc.ListAvailable(r.Context(), middleware.LanguageFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, available)
	}
}
