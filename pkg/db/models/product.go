package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is one menu entry with localized display fields. Prices live on the
// specs; the product itself carries no amount.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	NameEN        string          `gorm:"column:name_en;not null;default:''"`
	NameJA        string          `gorm:"column:name_ja;not null;default:''"`
	Description   string          `gorm:"column:description;not null;default:''"`
	DescriptionEN string          `gorm:"column:description_en;not null;default:''"`
	DescriptionJA string          `gorm:"column:description_ja;not null;default:''"`
	Image         string          `gorm:"column:image;not null;default:''"`
	Category      string          `gorm:"column:category;not null;default:''"`
	Rating        decimal.Decimal `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	Badges        pq.StringArray  `gorm:"column:badges;type:text[]"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	Position      int             `gorm:"column:position;not null;default:0"`
	Specs         []ProductSpec   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductSpec is one size/variant of a product with its own price. Every
// product exposes at least one spec and exactly one default.
type ProductSpec struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	Name          string           `gorm:"column:name;not null"`
	NameEN        string           `gorm:"column:name_en;not null;default:''"`
	NameJA        string           `gorm:"column:name_ja;not null;default:''"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(10,2)"`
	IsDefault     bool             `gorm:"column:is_default;not null;default:false"`
	Position      int              `gorm:"column:position;not null;default:0"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
