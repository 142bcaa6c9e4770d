package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes coupon reads for the cart and checkout flows.
type Service interface {
	ListAvailable(ctx context.Context, lang enums.Language) ([]CouponDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*pricing.Coupon, error)
	GetByCode(ctx context.Context, code string) (*pricing.Coupon, error)
}

// CouponDTO is the API shape of a coupon, already localized.
type CouponDTO struct {
	ID             uuid.UUID        `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Type           enums.CouponType `json:"type"`
	Value          decimal.Decimal  `json:"value"`
	MinOrderAmount decimal.Decimal  `json:"minOrderAmount"`
	ExpiryDate     pricing.Date     `json:"expiryDate"`
}

type couponRepo interface {
	ListAvailable(ctx context.Context, today time.Time) ([]models.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

type service struct {
	repo couponRepo
	now  func() time.Time
}

// NewService wires the coupon service against its repository. The clock is
// injectable for expiry tests; pass nil for time.Now.
func NewService(repo couponRepo, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository is required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

// ListAvailable returns unused, unexpired coupons for the given language.
func (s *service) ListAvailable(ctx context.Context, lang enums.Language) ([]CouponDTO, error) {
	rows, err := s.repo.ListAvailable(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	out := make([]CouponDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i], lang))
	}
	return out, nil
}

// GetByID loads one coupon in the engine's shape.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*pricing.Coupon, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	coupon := ToPricingCoupon(row)
	return &coupon, nil
}

// GetByCode loads one coupon by code in the engine's shape.
func (s *service) GetByCode(ctx context.Context, code string) (*pricing.Coupon, error) {
	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	coupon := ToPricingCoupon(row)
	return &coupon, nil
}

// ToPricingCoupon maps a coupon row to the engine's shape. The date column
// comes back at midnight with no meaningful zone, so only the calendar day is
// carried over.
func ToPricingCoupon(row *models.Coupon) pricing.Coupon {
	return pricing.Coupon{
		ID:             row.ID,
		Code:           row.Code,
		Type:           row.Type,
		Value:          row.Value,
		MinOrderAmount: row.MinOrderAmount,
		ExpiryDate:     pricing.DateOf(row.ExpiryDate),
		IsUsed:         row.IsUsed,
	}
}

func toDTO(row *models.Coupon, lang enums.Language) CouponDTO {
	dto := CouponDTO{
		ID:             row.ID,
		Code:           row.Code,
		Name:           row.Name,
		Description:    row.Description,
		Type:           row.Type,
		Value:          row.Value,
		MinOrderAmount: row.MinOrderAmount,
		ExpiryDate:     pricing.DateOf(row.ExpiryDate),
	}
	switch lang {
	case enums.LanguageEN:
		if row.NameEN != "" {
			dto.Name = row.NameEN
		}
		if row.DescriptionEN != "" {
			dto.Description = row.DescriptionEN
		}
	case enums.LanguageJA:
		if row.NameJA != "" {
			dto.Name = row.NameJA
		}
		if row.DescriptionJA != "" {
			dto.Description = row.DescriptionJA
		}
	}
	return dto
}
