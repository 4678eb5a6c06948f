package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/api/responses"
	"github.com/lunarcart/storefront-backend/api/validators"
	"github.com/lunarcart/storefront-backend/internal/sales"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/logger"
)

type applySaleRequest struct {
	ProductIDs         []uuid.UUID `json:"product_ids" validate:"required,min=1"`
	DiscountPercentage int         `json:"discount_percentage" validate:"required,gte=1,lte=99"`
	PriceListTitle     string      `json:"price_list_title,omitempty"`
	InflateBasePrices  *bool       `json:"inflate_base_prices,omitempty"`
}

func (r applySaleRequest) toInput() sales.ApplySaleInput {
	inflate := true
	if r.InflateBasePrices != nil {
		inflate = *r.InflateBasePrices
	}
	return sales.ApplySaleInput{
		ProductIDs:         r.ProductIDs,
		DiscountPercentage: r.DiscountPercentage,
		PriceListTitle:     r.PriceListTitle,
		InflateBasePrices:  inflate,
	}
}

// SalesApply inflates base prices and publishes a promotional price list.
func SalesApply(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload applySaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplySale(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type resetSaleRequest struct {
	PriceListID uuid.UUID `json:"price_list_id" validate:"required"`
}

// SalesReset restores inflated prices and retires the promotional list.
func SalesReset(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		var payload resetSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ResetSale(r.Context(), payload.PriceListID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
