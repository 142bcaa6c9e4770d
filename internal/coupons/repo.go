package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles coupon persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to coupon operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAvailable returns unused coupons whose expiry date is on or after the
// given day. The expiry day itself still counts as valid.
func (r *Repository) ListAvailable(ctx context.Context, today time.Time) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).
		Where("is_used = ? AND expiry_date >= ?", false, today.Format("2006-01-02")).
		Order("expiry_date ASC, created_at ASC").
		Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// FindByID loads one coupon by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByCode loads one coupon by its code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// MarkUsed flips the coupon to used inside the provided transaction handle.
// It reports gorm.ErrRecordNotFound when the coupon was already used, so
// concurrent checkouts cannot both consume it.
func (r *Repository) MarkUsed(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count reports how many coupon rows exist.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Coupon{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts coupons.
func (r *Repository) Create(ctx context.Context, coupons []models.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&coupons).Error
}
