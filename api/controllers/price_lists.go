package controllers

import (
	"net/http"

	"github.com/lunarcart/storefront-backend/api/responses"
	"github.com/lunarcart/storefront-backend/api/validators"
	"github.com/lunarcart/storefront-backend/internal/sales"
	pkgerrors "github.com/lunarcart/storefront-backend/pkg/errors"
	"github.com/lunarcart/storefront-backend/pkg/logger"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

// PriceListsList returns a cursor page of price lists with their decoded
// promotional metadata.
func PriceListsList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPriceLists(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
