package variants

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/lunarcart/storefront-backend/internal/catalog"
	"github.com/lunarcart/storefront-backend/internal/pricing"
	"github.com/lunarcart/storefront-backend/internal/pricestore"
	"github.com/lunarcart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/logger"
	"github.com/lunarcart/storefront-backend/pkg/metrics"
)

const operationUpsert = "upsert"

// Service covers variant price mutations and the pricing table read path.
type Service interface {
	UpdateVariantPrices(ctx context.Context, input UpdateVariantPricesInput) (*UpdateVariantPricesResult, error)
	ListVariantPrices(ctx context.Context, variantID uuid.UUID) (*VariantPricesView, error)
}

type service struct {
	prices  pricestore.Repository
	catalog catalog.Repository
	logg    *logger.Logger
	sale    *metrics.SaleMetrics
	saga    *upsertSaga
	maxTake int
}

// NewService builds the variant price service. Metrics may be nil.
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
		saga:    &upsertSaga{prices: prices},
		maxTake: maxTake,
	}, nil
}

func (s *service) UpdateVariantPrices(ctx context.Context, input UpdateVariantPricesInput) (*UpdateVariantPricesResult, error) {
	start := time.Now()
	result, err := s.updateVariantPrices(ctx, input)
	s.sale.ObserveDuration(operationUpsert, time.Since(start))
	if err != nil {
		s.sale.IncFailure(operationUpsert)
		return nil, err
	}
	s.sale.IncSuccess(operationUpsert)
	s.sale.AddPricesWritten(operationUpsert, result.CreatedCount+result.UpdatedCount)
	return result, nil
}

func (s *service) updateVariantPrices(ctx context.Context, input UpdateVariantPricesInput) (*UpdateVariantPricesResult, error) {
	if input.VariantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	if len(input.Prices) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices required")
	}
	for _, entry := range input.Prices {
		if entry.Amount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-negative")
		}
		if entry.CurrencyCode == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code required")
		}
	}

	ctx = s.logg.WithVariantID(ctx, input.VariantID.String())

	if _, err := s.catalog.GetVariant(ctx, input.VariantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	state, result, err := s.saga.forward(ctx, input.VariantID, input.Prices)
	if err == nil {
		return result, nil
	}

	s.logg.Error(ctx, "variant_prices.forward_failed", err)
	if compErr := s.saga.compensate(ctx, state); compErr != nil {
		// A failed compensation leaves the store inconsistent; surface
		// both errors as one hard failure.
		s.logg.Error(ctx, "variant_prices.compensation_failed", compErr)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, multierr.Append(err, compErr), "price upsert compensation failed")
	}

	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant prices")
}

func (s *service) ListVariantPrices(ctx context.Context, variantID uuid.UUID) (*VariantPricesView, error) {
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}

	if _, err := s.catalog.GetVariant(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	prices, err := s.prices.ListPrices(ctx, pricestore.PriceFilter{VariantIDs: []uuid.UUID{variantID}}, pricestore.ListOptions{Take: s.maxTake})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prices")
	}

	priceIDs := make([]uuid.UUID, 0, len(prices))
	for _, price := range prices {
		priceIDs = append(priceIDs, price.ID)
	}
	var rules []models.PriceRule
	if len(priceIDs) > 0 {
		rules, err = s.prices.ListPriceRules(ctx, pricestore.PriceRuleFilter{
			PriceIDs:  priceIDs,
			Attribute: models.RuleAttributeRegion,
		}, pricestore.ListOptions{Take: s.maxTake})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price rules")
		}
	}
	regionByPrice := pricing.RegionByPrice(rules)

	regionNames, err := s.resolveRegionNames(ctx, regionByPrice)
	if err != nil {
		// Region directory misses are non-fatal: contexts stay keyed by id.
		s.logg.Warn(s.logg.WithVariantID(ctx, variantID.String()), "variant_prices.region_lookup_failed")
	}

	contexts, annotated := pricing.Resolve(prices, regionByPrice, regionNames)
	return &VariantPricesView{
		VariantID: variantID,
		Contexts:  contexts,
		Prices:    annotated,
	}, nil
}

func (s *service) resolveRegionNames(ctx context.Context, regionByPrice map[uuid.UUID]string) (map[string]string, error) {
	seen := map[string]bool{}
	var ids []uuid.UUID
	for _, raw := range regionByPrice {
		if seen[raw] {
			continue
		}
		seen[raw] = true
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	regions, err := s.catalog.ListRegionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(regions))
	for _, region := range regions {
		names[region.ID.String()] = region.Name
	}
	return names, nil
}
