package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter as a UUID.
func ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// ParseOrderTypeParam reads the {orderType} URL parameter.
func ParseOrderTypeParam(r *http.Request) (enums.OrderType, error) {
	raw := chi.URLParam(r, "orderType")
	orderType, err := enums.ParseOrderType(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order type must be delivery or pickup").WithDetails(map[string]any{"field": "orderType"})
	}
	return orderType, nil
}
