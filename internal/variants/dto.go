package variants

import (
	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/internal/pricing"
)

// PriceUpsertEntry is one requested price: no ID means create, an ID
// means update the existing price's amount.
type PriceUpsertEntry struct {
	ID           *uuid.UUID
	CurrencyCode string
	RegionID     string
	Amount       int64
}

// UpdateVariantPricesInput carries a validated upsert request.
type UpdateVariantPricesInput struct {
	VariantID uuid.UUID
	Prices    []PriceUpsertEntry
}

// UpdateVariantPricesResult reports the split of the upsert.
type UpdateVariantPricesResult struct {
	VariantID    uuid.UUID `json:"variant_id"`
	CreatedCount int       `json:"created_count"`
	UpdatedCount int       `json:"updated_count"`
}

// VariantPricesView is the pricing table read model: every price
// annotated with its context key plus the sorted context list.
type VariantPricesView struct {
	VariantID uuid.UUID                `json:"variant_id"`
	Contexts  []pricing.Context        `json:"contexts"`
	Prices    []pricing.AnnotatedPrice `json:"prices"`
}
