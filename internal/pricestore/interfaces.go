package pricestore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

// Repository is the typed price store adapter. Every mutation is a batched
// bulk call so prices touched by one operation are written together.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListPrices(ctx context.Context, filter PriceFilter, opts ListOptions) ([]models.Price, error)
	CreatePrices(ctx context.Context, prices []models.Price) ([]models.Price, error)
	UpdatePriceAmounts(ctx context.Context, updates []PriceAmountUpdate) error
	DeletePrices(ctx context.Context, ids []uuid.UUID) error

	ListPriceRules(ctx context.Context, filter PriceRuleFilter, opts ListOptions) ([]models.PriceRule, error)
	CreatePriceRules(ctx context.Context, rules []models.PriceRule) error

	GetPriceList(ctx context.Context, id uuid.UUID) (*models.PriceList, error)
	ListPriceLists(ctx context.Context, filter PriceListFilter) ([]models.PriceList, error)
	CreatePriceList(ctx context.Context, input NewPriceList) (*models.PriceList, error)
	UpdatePriceListMetadata(ctx context.Context, id uuid.UUID, metadata map[string]any) error
	DeletePriceLists(ctx context.Context, ids []uuid.UUID) error
}
