package coupons

import (
	"context"
	"fmt"
	"time"

	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Seeder populates an empty coupons table with the launch vouchers,
// including one already-expired coupon so the ineligibility path is
// visible in dev environments.
type Seeder struct {
	repo *Repository
}

// NewSeeder binds the seeder to the coupon repository.
func NewSeeder(repo *Repository) *Seeder {
	return &Seeder{repo: repo}
}

// Run inserts the fixture coupons when the table is empty.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count coupons: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := s.repo.Create(ctx, fixtureCoupons()); err != nil {
		return false, fmt.Errorf("seed coupons: %w", err)
	}
	return true, nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func fixtureCoupons() []models.Coupon {
	return []models.Coupon{
		{
			Code:           "RAMEN10",
			Name:           "拉面满减券",
			NameEN:         "Ramen Discount Coupon",
			NameJA:         "ラーメン割引クーポン",
			Description:    "满50元减10元",
			DescriptionEN:  "¥10 off on orders over ¥50",
			DescriptionJA:  "50円以上の注文で10円引き",
			Type:           enums.CouponTypeFixed,
			Value:          decimal.RequireFromString("10"),
			MinOrderAmount: decimal.RequireFromString("50"),
			ExpiryDate:     day("2025-12-31"),
		},
		{
			Code:           "NEWUSER20",
			Name:           "新用户8折券",
			NameEN:         "New User 20% Off",
			NameJA:         "新規ユーザー20%オフ",
			Description:    "新用户首单8折",
			DescriptionEN:  "20% off for new users",
			DescriptionJA:  "新規ユーザー初回注文20%オフ",
			Type:           enums.CouponTypePercentage,
			Value:          decimal.RequireFromString("0.2"),
			MinOrderAmount: decimal.RequireFromString("30"),
			ExpiryDate:     day("2025-11-30"),
		},
		{
			Code:           "FREEDELIVERY",
			Name:           "免配送费券",
			NameEN:         "Free Delivery Coupon",
			NameJA:         "送料無料クーポン",
			Description:    "满30元免配送费",
			DescriptionEN:  "Free delivery on orders over ¥30",
			DescriptionJA:  "30円以上の注文で送料無料",
			Type:           enums.CouponTypeFixed,
			Value:          decimal.RequireFromString("6"),
			MinOrderAmount: decimal.RequireFromString("30"),
			ExpiryDate:     day("2025-10-15"),
		},
		{
			Code:           "EXPIRED",
			Name:           "过期优惠券",
			NameEN:         "Expired Coupon",
			NameJA:         "期限切れクーポン",
			Description:    "已过期，无法使用",
			DescriptionEN:  "Expired, cannot be used",
			DescriptionJA:  "期限切れ、使用不可",
			Type:           enums.CouponTypeFixed,
			Value:          decimal.RequireFromString("5"),
			MinOrderAmount: decimal.RequireFromString("10"),
			ExpiryDate:     day("2024-01-01"),
		},
	}
}
