package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListProductsWithBasePrices(ctx context.Context, productIDs []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.Prices", "price_list_id IS NULL").
		Where("id IN ?", productIDs).
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) GetVariant(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) ListRegionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Region, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var regions []models.Region
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}
