package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

// Repository exposes the catalog reads the pricing engine depends on:
// products with their variants' base prices, variants, and the region
// directory.
type Repository interface {
	ListProductsWithBasePrices(ctx context.Context, productIDs []uuid.UUID) ([]models.Product, error)
	GetVariant(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	ListRegionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Region, error)
}
