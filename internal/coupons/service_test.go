package coupons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	coupons  []models.Coupon
	err      error
	lastDay  time.Time
	dayAsked bool
}

func (s *stubRepo) ListAvailable(_ context.Context, today time.Time) ([]models.Coupon, error) {
	s.lastDay = today
	s.dayAsked = true
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Coupon
	for _, c := range s.coupons {
		if !c.IsUsed && !c.ExpiryDate.Before(truncateToDay(today)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.coupons {
		if s.coupons[i].ID == id {
			return &s.coupons[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.coupons {
		if s.coupons[i].Code == code {
			return &s.coupons[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func fixedCoupon(code string, expiry time.Time) models.Coupon {
	return models.Coupon{
		ID:             uuid.New(),
		Code:           code,
		Name:           "拉面满减券",
		NameEN:         "Ramen Discount Coupon",
		Type:           enums.CouponTypeFixed,
		Value:          decimal.RequireFromString("10"),
		MinOrderAmount: decimal.RequireFromString("50"),
		ExpiryDate:     expiry,
	}
}

func TestListAvailableFiltersExpiredAndUsed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.October, 15, 20, 0, 0, 0, time.UTC)
	live := fixedCoupon("RAMEN10", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	onExpiryDay := fixedCoupon("FREEDELIVERY", time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC))
	expired := fixedCoupon("EXPIRED", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	used := fixedCoupon("USED", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	used.IsUsed = true

	repo := &stubRepo{coupons: []models.Coupon{live, onExpiryDay, expired, used}}
	svc, err := NewService(repo, func() time.Time { return now })
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.ListAvailable(context.Background(), enums.LanguageZH)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 coupons, got %d: %+v", len(got), got)
	}
	// A coupon expiring today is still listed.
	codes := map[string]bool{}
	for _, c := range got {
		codes[c.Code] = true
	}
	if !codes["RAMEN10"] || !codes["FREEDELIVERY"] {
		t.Fatalf("unexpected codes: %v", codes)
	}
	if !repo.dayAsked || !repo.lastDay.Equal(now) {
		t.Fatalf("repository queried with wrong day: %v", repo.lastDay)
	}
}

func TestListAvailableLocalizes(t *testing.T) {
	t.Parallel()

	live := fixedCoupon("RAMEN10", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	svc, err := NewService(&stubRepo{coupons: []models.Coupon{live}}, func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.ListAvailable(context.Background(), enums.LanguageEN)
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if got[0].Name != "Ramen Discount Coupon" {
		t.Fatalf("name = %q", got[0].Name)
	}
}

func TestGetByIDMapsToEngineShape(t *testing.T) {
	t.Parallel()

	row := fixedCoupon("RAMEN10", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	svc, err := NewService(&stubRepo{coupons: []models.Coupon{row}}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	coupon, err := svc.GetByID(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want := pricing.Date{Year: 2025, Month: time.December, Day: 31}
	if coupon.ExpiryDate != want {
		t.Fatalf("expiry = %v, want %v", coupon.ExpiryDate, want)
	}
	if !coupon.Value.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("value = %s", coupon.Value)
	}
}

func TestGetByCodeNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetByCode(context.Background(), "NOPE")
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
