package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Coupon is a persisted discount rule plus its localized display copy. The
// expiry column is a plain date; the day itself is still valid for use.
type Coupon struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code           string           `gorm:"column:code;not null;uniqueIndex:idx_coupons_code"`
	Name           string           `gorm:"column:name;not null"`
	NameEN         string           `gorm:"column:name_en;not null;default:''"`
	NameJA         string           `gorm:"column:name_ja;not null;default:''"`
	Description    string           `gorm:"column:description;not null;default:''"`
	DescriptionEN  string           `gorm:"column:description_en;not null;default:''"`
	DescriptionJA  string           `gorm:"column:description_ja;not null;default:''"`
	Type           enums.CouponType `gorm:"column:type;type:coupon_type;not null"`
	Value          decimal.Decimal  `gorm:"column:value;type:numeric(10,4);not null"`
	MinOrderAmount decimal.Decimal  `gorm:"column:min_order_amount;type:numeric(10,2);not null;default:0"`
	ExpiryDate     time.Time        `gorm:"column:expiry_date;type:date;not null"`
	IsUsed         bool             `gorm:"column:is_used;not null;default:false"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
