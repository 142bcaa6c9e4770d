package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/hanamura/noodlehouse-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles menu persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns all active products with their specs, in menu order.
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Specs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("is_active = ?", true).
		Order("position ASC, created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindProductByID loads one active product with its specs.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Specs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListSideItems returns all active side items in menu order.
func (r *Repository) ListSideItems(ctx context.Context) ([]models.SideItem, error) {
	var sides []models.SideItem
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC, created_at ASC").
		Find(&sides).Error; err != nil {
		return nil, err
	}
	return sides, nil
}

// CountProducts reports how many product rows exist, active or not.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateProducts inserts products with their specs in one transaction.
func (r *Repository) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}

// CreateSideItems inserts side items.
func (r *Repository) CreateSideItems(ctx context.Context, sides []models.SideItem) error {
	if len(sides) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sides).Error
}
