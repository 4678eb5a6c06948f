package variants

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/lunarcart/storefront-backend/internal/pricestore"
	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

// PriceRevert is the captured pre-update amount of one price, the
// compensation payload for an update.
type PriceRevert struct {
	ID        uuid.UUID
	OldAmount int64
}

// CompensationState is the forward step's return value: everything the
// compensation step needs to undo the writes that happened. It is
// populated incrementally, so a partial forward failure still yields a
// state covering exactly what was written.
type CompensationState struct {
	CreatedPriceIDs []uuid.UUID
	PriceUpdates    []PriceRevert
}

// Empty reports whether there is nothing to compensate.
func (s CompensationState) Empty() bool {
	return len(s.CreatedPriceIDs) == 0 && len(s.PriceUpdates) == 0
}

type upsertSaga struct {
	prices pricestore.Repository
}

// forward partitions the entries into creates and updates, captures the
// pre-update amounts, then writes. The returned state is valid even when
// err is non-nil.
func (s *upsertSaga) forward(ctx context.Context, variantID uuid.UUID, entries []PriceUpsertEntry) (CompensationState, *UpdateVariantPricesResult, error) {
	state := CompensationState{}

	var toCreate []PriceUpsertEntry
	var toUpdate []PriceUpsertEntry
	for _, entry := range entries {
		if entry.ID == nil {
			toCreate = append(toCreate, entry)
		} else {
			toUpdate = append(toUpdate, entry)
		}
	}

	// Capture old amounts before any write; this read is the only source
	// of the update compensation payload.
	reverts := make([]PriceRevert, 0, len(toUpdate))
	if len(toUpdate) > 0 {
		ids := make([]uuid.UUID, 0, len(toUpdate))
		for _, entry := range toUpdate {
			ids = append(ids, *entry.ID)
		}
		current, err := s.prices.ListPrices(ctx, pricestore.PriceFilter{IDs: ids}, pricestore.ListOptions{Take: len(ids)})
		if err != nil {
			return state, nil, fmt.Errorf("load current amounts: %w", err)
		}
		amounts := make(map[uuid.UUID]int64, len(current))
		for _, price := range current {
			amounts[price.ID] = price.Amount
		}
		for _, entry := range toUpdate {
			old, ok := amounts[*entry.ID]
			if !ok {
				return state, nil, fmt.Errorf("price %s not found", entry.ID)
			}
			reverts = append(reverts, PriceRevert{ID: *entry.ID, OldAmount: old})
		}
	}

	if len(toCreate) > 0 {
		prices := make([]models.Price, 0, len(toCreate))
		for _, entry := range toCreate {
			prices = append(prices, models.Price{
				VariantID:    variantID,
				CurrencyCode: entry.CurrencyCode,
				Amount:       entry.Amount,
			})
		}
		created, err := s.prices.CreatePrices(ctx, prices)
		if err != nil {
			return state, nil, fmt.Errorf("create prices: %w", err)
		}
		for _, price := range created {
			state.CreatedPriceIDs = append(state.CreatedPriceIDs, price.ID)
		}

		var rules []models.PriceRule
		for i, entry := range toCreate {
			if entry.RegionID == "" {
				continue
			}
			rules = append(rules, models.PriceRule{
				PriceID:   created[i].ID,
				Attribute: models.RuleAttributeRegion,
				Value:     entry.RegionID,
			})
		}
		if err := s.prices.CreatePriceRules(ctx, rules); err != nil {
			return state, nil, fmt.Errorf("create region rules: %w", err)
		}
	}

	if len(toUpdate) > 0 {
		updates := make([]pricestore.PriceAmountUpdate, 0, len(toUpdate))
		for _, entry := range toUpdate {
			updates = append(updates, pricestore.PriceAmountUpdate{ID: *entry.ID, Amount: entry.Amount})
		}
		if err := s.prices.UpdatePriceAmounts(ctx, updates); err != nil {
			return state, nil, fmt.Errorf("update prices: %w", err)
		}
		state.PriceUpdates = reverts
	}

	return state, &UpdateVariantPricesResult{
		VariantID:    variantID,
		CreatedCount: len(toCreate),
		UpdatedCount: len(toUpdate),
	}, nil
}

// compensate undoes a forward step: deletes created prices and reverts
// updated ones. Safe to call with an empty state. Individual failures
// are aggregated; every undo is still attempted.
func (s *upsertSaga) compensate(ctx context.Context, state CompensationState) error {
	if state.Empty() {
		return nil
	}

	var errs error
	if len(state.CreatedPriceIDs) > 0 {
		if err := s.prices.DeletePrices(ctx, state.CreatedPriceIDs); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete created prices: %w", err))
		}
	}
	if len(state.PriceUpdates) > 0 {
		reverts := make([]pricestore.PriceAmountUpdate, 0, len(state.PriceUpdates))
		for _, revert := range state.PriceUpdates {
			reverts = append(reverts, pricestore.PriceAmountUpdate{ID: revert.ID, Amount: revert.OldAmount})
		}
		if err := s.prices.UpdatePriceAmounts(ctx, reverts); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("revert updated prices: %w", err))
		}
	}
	return errs
}
