package pricestore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
	dbtypes "github.com/lunarcart/storefront-backend/pkg/db/types"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a price store repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListPrices(ctx context.Context, filter PriceFilter, opts ListOptions) ([]models.Price, error) {
	query := r.db.WithContext(ctx).Model(&models.Price{})
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if len(filter.VariantIDs) > 0 {
		query = query.Where("variant_id IN ?", filter.VariantIDs)
	}
	if filter.BaseOnly {
		query = query.Where("price_list_id IS NULL")
	}
	if opts.Take > 0 {
		query = query.Limit(opts.Take)
	}

	var prices []models.Price
	if err := query.Order("created_at ASC").Find(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) CreatePrices(ctx context.Context, prices []models.Price) ([]models.Price, error) {
	if len(prices) == 0 {
		return nil, nil
	}
	for i := range prices {
		if prices[i].ID == uuid.Nil {
			prices[i].ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&prices).Error; err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) UpdatePriceAmounts(ctx context.Context, updates []PriceAmountUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			if err := tx.Model(&models.Price{}).
				Where("id = ?", update.ID).
				Update("amount", update.Amount).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) DeletePrices(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_id IN ?", ids).Delete(&models.PriceRule{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Price{}).Error
	})
}

func (r *repository) ListPriceRules(ctx context.Context, filter PriceRuleFilter, opts ListOptions) ([]models.PriceRule, error) {
	query := r.db.WithContext(ctx).Model(&models.PriceRule{})
	if len(filter.PriceIDs) > 0 {
		query = query.Where("price_id IN ?", filter.PriceIDs)
	}
	if filter.Attribute != "" {
		query = query.Where("attribute = ?", filter.Attribute)
	}
	if opts.Take > 0 {
		query = query.Limit(opts.Take)
	}

	var rules []models.PriceRule
	if err := query.Order("created_at ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) CreatePriceRules(ctx context.Context, rules []models.PriceRule) error {
	if len(rules) == 0 {
		return nil
	}
	for i := range rules {
		if rules[i].ID == uuid.Nil {
			rules[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&rules).Error
}

func (r *repository) GetPriceList(ctx context.Context, id uuid.UUID) (*models.PriceList, error) {
	var list models.PriceList
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *repository) ListPriceLists(ctx context.Context, filter PriceListFilter) ([]models.PriceList, error) {
	query := r.db.WithContext(ctx).Model(&models.PriceList{})
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}

	cursor, err := pagination.ParseCursor(filter.Pagination.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var lists []models.PriceList
	err = query.
		Order("created_at ASC").
		Order("id ASC").
		Limit(pagination.LimitWithBuffer(filter.Pagination.Limit)).
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *repository) CreatePriceList(ctx context.Context, input NewPriceList) (*models.PriceList, error) {
	list := models.PriceList{
		ID:          uuid.New(),
		Title:       input.Title,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Type:        input.Type,
	}
	if input.Metadata != nil {
		list.Metadata = dbtypes.JSONMap(input.Metadata)
	}

	for _, entry := range input.Entries {
		price := models.Price{
			ID:           uuid.New(),
			VariantID:    entry.VariantID,
			CurrencyCode: entry.CurrencyCode,
			Amount:       entry.Amount,
		}
		if entry.RegionID != "" {
			price.Rules = []models.PriceRule{{
				ID:        uuid.New(),
				PriceID:   price.ID,
				Attribute: models.RuleAttributeRegion,
				Value:     entry.RegionID,
			}}
		}
		list.Prices = append(list.Prices, price)
	}

	if err := r.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *repository) UpdatePriceListMetadata(ctx context.Context, id uuid.UUID, metadata map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PriceList{}).
		Where("id = ?", id).
		Update("metadata", dbtypes.JSONMap(metadata)).Error
}

func (r *repository) DeletePriceLists(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var priceIDs []uuid.UUID
		err := tx.Model(&models.Price{}).
			Where("price_list_id IN ?", ids).
			Pluck("id", &priceIDs).Error
		if err != nil {
			return err
		}
		if len(priceIDs) > 0 {
			if err := tx.Where("price_id IN ?", priceIDs).Delete(&models.PriceRule{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", priceIDs).Delete(&models.Price{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", ids).Delete(&models.PriceList{}).Error
	})
}
