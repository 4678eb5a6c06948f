package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/internal/catalog"
	"github.com/lunarcart/storefront-backend/internal/pricing"
	"github.com/lunarcart/storefront-backend/internal/pricestore"
	"github.com/lunarcart/storefront-backend/pkg/db/models"
	"github.com/lunarcart/storefront-backend/pkg/enums"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/logger"
	"github.com/lunarcart/storefront-backend/pkg/metrics"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

const (
	operationApply = "apply"
	operationReset = "reset"
)

// Service drives the promotional pricing engine: applying a sale,
// resetting it, and the price list read path.
type Service interface {
	ApplySale(ctx context.Context, input ApplySaleInput) (*ApplySaleResult, error)
	ResetSale(ctx context.Context, priceListID uuid.UUID) (*ResetSaleResult, error)
	ListPriceLists(ctx context.Context, params pagination.Params) (*PriceListPage, error)
}

type service struct {
	prices  pricestore.Repository
	catalog catalog.Repository
	logg    *logger.Logger
	sale    *metrics.SaleMetrics
	maxTake int
}

// NewService builds the sale service with the required dependencies.
// Metrics may be nil; recording is then a no-op.
func NewService(prices pricestore.Repository, cat catalog.Repository, logg *logger.Logger, sale *metrics.SaleMetrics, maxTake int) (Service, error) {
	if prices == nil {
		return nil, fmt.Errorf("price store repository required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if maxTake <= 0 {
		maxTake = 1000
	}
	return &service{
		prices:  prices,
		catalog: cat,
		logg:    logg,
		sale:    sale,
		maxTake: maxTake,
	}, nil
}

func (s *service) ApplySale(ctx context.Context, input ApplySaleInput) (*ApplySaleResult, error) {
	start := time.Now()
	result, err := s.applySale(ctx, input)
	s.sale.ObserveDuration(operationApply, time.Since(start))
	if err != nil {
		s.sale.IncFailure(operationApply)
		return nil, err
	}
	s.sale.IncSuccess(operationApply)
	s.sale.AddPricesWritten(operationApply, result.PricesUpdated)
	return result, nil
}

func (s *service) applySale(ctx context.Context, input ApplySaleInput) (*ApplySaleResult, error) {
	if len(input.ProductIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ids required")
	}
	if input.DiscountPercentage < 1 || input.DiscountPercentage > 99 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 1 and 99")
	}

	products, err := s.catalog.ListProductsWithBasePrices(ctx, input.ProductIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	var basePrices []models.Price
	variantSeen := map[uuid.UUID]bool{}
	for _, product := range products {
		for _, variant := range product.Variants {
			for _, price := range variant.Prices {
				if !price.IsBase() {
					continue
				}
				basePrices = append(basePrices, price)
				variantSeen[variant.ID] = true
			}
		}
	}
	if len(basePrices) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no base prices found for the requested products")
	}

	priceIDs := make([]uuid.UUID, 0, len(basePrices))
	for _, price := range basePrices {
		priceIDs = append(priceIDs, price.ID)
	}
	rules, err := s.prices.ListPriceRules(ctx, pricestore.PriceRuleFilter{
		PriceIDs:  priceIDs,
		Attribute: models.RuleAttributeRegion,
	}, pricestore.ListOptions{Take: s.maxTake})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price rules")
	}
	regionByPrice := pricing.RegionByPrice(rules)

	var (
		updates     []pricestore.PriceAmountUpdate
		restoreData []RestoreEntry
		entries     []pricestore.NewPriceListEntry
	)
	for _, price := range basePrices {
		entry := pricestore.NewPriceListEntry{
			VariantID:    price.VariantID,
			CurrencyCode: price.CurrencyCode,
			RegionID:     regionByPrice[price.ID],
		}

		if input.InflateBasePrices {
			updates = append(updates, pricestore.PriceAmountUpdate{
				ID:     price.ID,
				Amount: inflatedAmount(price.Amount, input.DiscountPercentage),
			})
			restoreData = append(restoreData, RestoreEntry{
				PriceID:        price.ID.String(),
				OriginalAmount: price.Amount,
				CurrencyCode:   price.CurrencyCode,
			})
			// The promotional entry carries the pre-inflation amount.
			entry.Amount = price.Amount
		} else {
			entry.Amount = discountedAmount(price.Amount, input.DiscountPercentage)
		}

		entries = append(entries, entry)
	}

	if input.InflateBasePrices {
		// Not compensated: a partial failure here can leave some base
		// prices inflated before the restore data is persisted.
		if err := s.prices.UpdatePriceAmounts(ctx, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inflate base prices")
		}
	}

	title := input.PriceListTitle
	if title == "" {
		title = fmt.Sprintf("Sale %d%% OFF - %s", input.DiscountPercentage, time.Now().UTC().Format("2006-01-02"))
	}

	list, err := s.prices.CreatePriceList(ctx, pricestore.NewPriceList{
		Title:   title,
		Name:    title,
		Status:  enums.PriceListStatusActive,
		Type:    enums.PriceListTypeSale,
		Entries: entries,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price list")
	}

	metadata := BuildSaleMetadata(input.InflateBasePrices, input.DiscountPercentage, restoreData)
	if err := s.prices.UpdatePriceListMetadata(ctx, list.ID, metadata); err != nil {
		// Best-effort: the sale stands, but reset will see the list as
		// degraded until metadata lands.
		lctx := s.logg.WithPriceListID(ctx, list.ID.String())
		s.logg.Error(lctx, "sale.metadata_attach_failed", err)
	} else {
		list.Metadata = metadata
	}

	return &ApplySaleResult{
		PriceList:       list,
		VariantsUpdated: len(variantSeen),
		PricesUpdated:   len(entries),
	}, nil
}

func (s *service) ResetSale(ctx context.Context, priceListID uuid.UUID) (*ResetSaleResult, error) {
	start := time.Now()
	result, err := s.resetSale(ctx, priceListID)
	s.sale.ObserveDuration(operationReset, time.Since(start))
	if err != nil {
		s.sale.IncFailure(operationReset)
		return nil, err
	}
	s.sale.IncSuccess(operationReset)
	s.sale.AddPricesWritten(operationReset, result.PricesReset)
	return result, nil
}

func (s *service) resetSale(ctx context.Context, priceListID uuid.UUID) (*ResetSaleResult, error) {
	if priceListID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price list id required")
	}

	ctx = s.logg.WithPriceListID(ctx, priceListID.String())

	list, err := s.prices.GetPriceList(ctx, priceListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price list")
	}

	info, parseErr := DecodeSaleInfo(list)
	if parseErr != nil {
		s.logg.Warn(ctx, "sale.legacy_restore_parse_failed")
	}
	if info.Degraded {
		s.logg.Warn(ctx, "sale.restore_data_unrecoverable")
	}

	updates := make([]pricestore.PriceAmountUpdate, 0, len(info.RestoreData))
	for _, entry := range info.RestoreData {
		id, err := uuid.Parse(entry.PriceID)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "price_id", entry.PriceID), "sale.restore_entry_invalid_id")
			continue
		}
		updates = append(updates, pricestore.PriceAmountUpdate{ID: id, Amount: entry.OriginalAmount})
	}

	// Restore before delete: the list holds the only copy of the restore
	// mapping, so a failed restore must leave it intact for retry.
	if len(updates) > 0 {
		if err := s.prices.UpdatePriceAmounts(ctx, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore original prices")
		}
	}

	if err := s.prices.DeletePriceLists(ctx, []uuid.UUID{priceListID}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price list")
	}

	return &ResetSaleResult{
		WasInflated:        info.IsInflated,
		PricesReset:        len(updates),
		DeletedPriceListID: priceListID,
		Degraded:           info.Degraded,
	}, nil
}

func (s *service) ListPriceLists(ctx context.Context, params pagination.Params) (*PriceListPage, error) {
	lists, err := s.prices.ListPriceLists(ctx, pricestore.PriceListFilter{Pagination: params})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price lists")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	nextCursor := ""
	if len(lists) > limit {
		lists = lists[:limit]
		last := lists[len(lists)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]PriceListSummary, 0, len(lists))
	for i := range lists {
		list := lists[i]
		info, parseErr := DecodeSaleInfo(&list)
		if parseErr != nil {
			s.logg.Warn(s.logg.WithPriceListID(ctx, list.ID.String()), "sale.legacy_restore_parse_failed")
		}
		summaries = append(summaries, PriceListSummary{
			ID:                 list.ID,
			Title:              list.Title,
			Status:             list.Status,
			Type:               list.Type,
			IsInflated:         info.IsInflated,
			DiscountPercentage: info.DiscountPercentage,
			RestoreData:        info.RestoreData,
			Degraded:           info.Degraded,
			CreatedAt:          list.CreatedAt,
		})
	}

	return &PriceListPage{
		PriceLists: summaries,
		Count:      len(summaries),
		NextCursor: nextCursor,
	}, nil
}

// inflatedAmount computes round(amount / (1 - pct/100)) with
// round-half-away-from-zero semantics on integer minor units.
func inflatedAmount(amount int64, pct int) int64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100)))
	return decimal.NewFromInt(amount).Div(factor).Round(0).IntPart()
}

// discountedAmount computes round(amount * (1 - pct/100)).
func discountedAmount(amount int64, pct int) int64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(pct)).Div(decimal.NewFromInt(100)))
	return decimal.NewFromInt(amount).Mul(factor).Round(0).IntPart()
}
