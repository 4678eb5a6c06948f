package pricestore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
	"github.com/lunarcart/storefront-backend/pkg/enums"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

func setupPriceStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	prices := `
CREATE TABLE IF NOT EXISTS prices (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  currency_code TEXT NOT NULL,
  amount INTEGER NOT NULL,
  price_list_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	priceRules := `
CREATE TABLE IF NOT EXISTS price_rules (
  id TEXT PRIMARY KEY,
  price_id TEXT NOT NULL,
  attribute TEXT NOT NULL,
  value TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	priceLists := `
CREATE TABLE IF NOT EXISTS price_lists (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'draft',
  type TEXT NOT NULL DEFAULT 'override',
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(prices).Error)
	require.NoError(t, db.Exec(priceRules).Error)
	require.NoError(t, db.Exec(priceLists).Error)
	return db
}

func createBasePrice(t *testing.T, db *gorm.DB, variantID uuid.UUID, currency string, amount int64) *models.Price {
	t.Helper()

	price := &models.Price{
		ID:           uuid.New(),
		VariantID:    variantID,
		CurrencyCode: currency,
		Amount:       amount,
	}
	require.NoError(t, db.Create(price).Error)
	return price
}

func TestRepositoryListPrices_filters(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	variantA := uuid.New()
	variantB := uuid.New()
	base := createBasePrice(t, db, variantA, "usd", 1000)
	createBasePrice(t, db, variantB, "eur", 900)

	listID := uuid.New()
	salePrice := &models.Price{
		ID:           uuid.New(),
		VariantID:    variantA,
		CurrencyCode: "usd",
		Amount:       600,
		PriceListID:  &listID,
	}
	require.NoError(t, db.Create(salePrice).Error)

	all, err := repo.ListPrices(context.Background(), PriceFilter{VariantIDs: []uuid.UUID{variantA}}, ListOptions{Take: 100})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	baseOnly, err := repo.ListPrices(context.Background(), PriceFilter{VariantIDs: []uuid.UUID{variantA}, BaseOnly: true}, ListOptions{Take: 100})
	require.NoError(t, err)
	require.Len(t, baseOnly, 1)
	assert.Equal(t, base.ID, baseOnly[0].ID)

	byID, err := repo.ListPrices(context.Background(), PriceFilter{IDs: []uuid.UUID{base.ID}}, ListOptions{})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, int64(1000), byID[0].Amount)
}

func TestRepositoryUpdatePriceAmounts_batch(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	variantID := uuid.New()
	first := createBasePrice(t, db, variantID, "usd", 1000)
	second := createBasePrice(t, db, variantID, "eur", 2000)

	err := repo.UpdatePriceAmounts(context.Background(), []PriceAmountUpdate{
		{ID: first.ID, Amount: 1250},
		{ID: second.ID, Amount: 2500},
	})
	require.NoError(t, err)

	prices, err := repo.ListPrices(context.Background(), PriceFilter{IDs: []uuid.UUID{first.ID, second.ID}}, ListOptions{})
	require.NoError(t, err)
	amounts := map[uuid.UUID]int64{}
	for _, p := range prices {
		amounts[p.ID] = p.Amount
	}
	assert.Equal(t, int64(1250), amounts[first.ID])
	assert.Equal(t, int64(2500), amounts[second.ID])
}

func TestRepositoryDeletePrices_removesRules(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	price := createBasePrice(t, db, uuid.New(), "usd", 700)
	require.NoError(t, repo.CreatePriceRules(context.Background(), []models.PriceRule{
		{PriceID: price.ID, Attribute: models.RuleAttributeRegion, Value: "region-a"},
	}))

	require.NoError(t, repo.DeletePrices(context.Background(), []uuid.UUID{price.ID}))

	remaining, err := repo.ListPrices(context.Background(), PriceFilter{IDs: []uuid.UUID{price.ID}}, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, remaining)

	rules, err := repo.ListPriceRules(context.Background(), PriceRuleFilter{PriceIDs: []uuid.UUID{price.ID}}, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRepositoryListPriceRules_attributeFilter(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	price := createBasePrice(t, db, uuid.New(), "usd", 800)
	require.NoError(t, repo.CreatePriceRules(context.Background(), []models.PriceRule{
		{PriceID: price.ID, Attribute: models.RuleAttributeRegion, Value: "region-a"},
		{PriceID: price.ID, Attribute: "customer_group_id", Value: "vip"},
	}))

	rules, err := repo.ListPriceRules(context.Background(), PriceRuleFilter{
		PriceIDs:  []uuid.UUID{price.ID},
		Attribute: models.RuleAttributeRegion,
	}, ListOptions{Take: 50})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "region-a", rules[0].Value)
}

func TestRepositoryCreatePriceList_withEntriesAndRules(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	variantID := uuid.New()
	list, err := repo.CreatePriceList(context.Background(), NewPriceList{
		Title:  "Sale 20% OFF",
		Name:   "sale-20",
		Status: enums.PriceListStatusActive,
		Type:   enums.PriceListTypeSale,
		Metadata: map[string]any{
			"is_inflated": true,
		},
		Entries: []NewPriceListEntry{
			{VariantID: variantID, CurrencyCode: "usd", Amount: 1000, RegionID: "region-a"},
			{VariantID: variantID, CurrencyCode: "eur", Amount: 900},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, list.ID)
	require.Len(t, list.Prices, 2)

	stored, err := repo.ListPrices(context.Background(), PriceFilter{VariantIDs: []uuid.UUID{variantID}}, ListOptions{})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, p := range stored {
		require.NotNil(t, p.PriceListID)
		assert.Equal(t, list.ID, *p.PriceListID)
	}

	rules, err := repo.ListPriceRules(context.Background(), PriceRuleFilter{Attribute: models.RuleAttributeRegion}, ListOptions{})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "region-a", rules[0].Value)
}

func TestRepositoryUpdatePriceListMetadata(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	list, err := repo.CreatePriceList(context.Background(), NewPriceList{
		Title:  "Sale",
		Name:   "sale",
		Status: enums.PriceListStatusActive,
		Type:   enums.PriceListTypeSale,
	})
	require.NoError(t, err)

	err = repo.UpdatePriceListMetadata(context.Background(), list.ID, map[string]any{
		"is_inflated":         true,
		"discount_percentage": float64(25),
	})
	require.NoError(t, err)

	stored, err := repo.GetPriceList(context.Background(), list.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Metadata)
	assert.Equal(t, true, stored.Metadata["is_inflated"])
	assert.Equal(t, float64(25), stored.Metadata["discount_percentage"])
}

func TestRepositoryDeletePriceLists_cascades(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	variantID := uuid.New()
	list, err := repo.CreatePriceList(context.Background(), NewPriceList{
		Title:  "Sale",
		Name:   "sale",
		Status: enums.PriceListStatusActive,
		Type:   enums.PriceListTypeSale,
		Entries: []NewPriceListEntry{
			{VariantID: variantID, CurrencyCode: "usd", Amount: 500, RegionID: "region-a"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeletePriceLists(context.Background(), []uuid.UUID{list.ID}))

	_, err = repo.GetPriceList(context.Background(), list.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	prices, err := repo.ListPrices(context.Background(), PriceFilter{VariantIDs: []uuid.UUID{variantID}}, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, prices)

	rules, err := repo.ListPriceRules(context.Background(), PriceRuleFilter{Attribute: models.RuleAttributeRegion}, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestRepositoryListPriceLists_pagination(t *testing.T) {
	db := setupPriceStoreTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		list := &models.PriceList{
			ID:        uuid.New(),
			Title:     "Sale",
			Name:      "sale",
			Status:    enums.PriceListStatusActive,
			Type:      enums.PriceListTypeSale,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(list).Error)
	}

	first, err := repo.ListPriceLists(context.Background(), PriceListFilter{Pagination: pagination.Params{Limit: 2}})
	require.NoError(t, err)
	// limit+1 buffer row signals another page
	require.Len(t, first, 3)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: first[1].CreatedAt, ID: first[1].ID})
	second, err := repo.ListPriceLists(context.Background(), PriceListFilter{Pagination: pagination.Params{Limit: 2, Cursor: cursor}})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[2].ID, second[0].ID)
}
