package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/api/responses"
	"github.com/lunarcart/storefront-backend/api/validators"
	"github.com/lunarcart/storefront-backend/internal/variants"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/logger"
)

type variantPriceEntry struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	CurrencyCode string     `json:"currency_code" validate:"required"`
	RegionID     string     `json:"region_id,omitempty"`
	Amount       int64      `json:"amount" validate:"gte=0"`
}

type updateVariantPricesRequest struct {
	Prices []variantPriceEntry `json:"prices" validate:"required,min=1,dive"`
}

func (r updateVariantPricesRequest) toInput(variantID uuid.UUID) variants.UpdateVariantPricesInput {
	entries := make([]variants.PriceUpsertEntry, 0, len(r.Prices))
	for _, entry := range r.Prices {
		entries = append(entries, variants.PriceUpsertEntry{
			ID:           entry.ID,
			CurrencyCode: entry.CurrencyCode,
			RegionID:     entry.RegionID,
			Amount:       entry.Amount,
		})
	}
	return variants.UpdateVariantPricesInput{
		VariantID: variantID,
		Prices:    entries,
	}
}

// VariantPricesUpdate upserts a variant's prices through the saga.
func VariantPricesUpdate(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variants service unavailable"))
			return
		}

		variantID, err := uuid.Parse(chi.URLParam(r, "variantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		var payload updateVariantPricesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateVariantPrices(r.Context(), payload.toInput(variantID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// VariantPricesList returns the variant's prices annotated with their
// pricing contexts.
func VariantPricesList(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variants service unavailable"))
			return
		}

		variantID, err := uuid.Parse(chi.URLParam(r, "variantId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		view, err := svc.ListVariantPrices(r.Context(), variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
