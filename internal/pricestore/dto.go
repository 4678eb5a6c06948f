package pricestore

import (
	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/enums"
	"github.com/lunarcart/storefront-backend/pkg/pagination"
)

// PriceFilter narrows price listings. BaseOnly restricts results to prices
// outside any price list.
type PriceFilter struct {
	IDs        []uuid.UUID
	VariantIDs []uuid.UUID
	BaseOnly   bool
}

// PriceRuleFilter narrows price rule listings.
type PriceRuleFilter struct {
	PriceIDs  []uuid.UUID
	Attribute string
}

// ListOptions caps bulk reads.
type ListOptions struct {
	Take int
}

// PriceAmountUpdate is one entry of a bulk amount rewrite.
type PriceAmountUpdate struct {
	ID     uuid.UUID
	Amount int64
}

// PriceListFilter narrows price list listings with cursor pagination.
type PriceListFilter struct {
	IDs        []uuid.UUID
	Pagination pagination.Params
}

// NewPriceListEntry is one promotional price in a price list create call.
type NewPriceListEntry struct {
	VariantID    uuid.UUID
	CurrencyCode string
	Amount       int64
	RegionID     string
}

// NewPriceList is the price list create payload: the list row plus its
// entries, written together.
type NewPriceList struct {
	Title       string
	Name        string
	Description string
	Status      enums.PriceListStatus
	Type        enums.PriceListType
	Metadata    map[string]any
	Entries     []NewPriceListEntry
}
