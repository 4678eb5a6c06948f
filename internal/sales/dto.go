package sales

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
	"github.com/lunarcart/storefront-backend/pkg/enums"
)

// ApplySaleInput carries a validated apply request.
type ApplySaleInput struct {
	ProductIDs         []uuid.UUID
	DiscountPercentage int
	PriceListTitle     string
	InflateBasePrices  bool
}

// ApplySaleResult reports what the applier wrote.
type ApplySaleResult struct {
	PriceList       *models.PriceList `json:"price_list"`
	VariantsUpdated int               `json:"variants_updated"`
	PricesUpdated   int               `json:"prices_updated"`
}

// ResetSaleResult reports the outcome of retiring a promotional list.
// PricesReset of 0 means the list was deleted with no reversible prices.
type ResetSaleResult struct {
	WasInflated        bool      `json:"was_inflated"`
	PricesReset        int       `json:"prices_reset"`
	DeletedPriceListID uuid.UUID `json:"deleted_price_list_id"`
	Degraded           bool      `json:"degraded,omitempty"`
}

// PriceListSummary is one row of the listing read path, with both
// metadata encodings decoded into the same shape.
type PriceListSummary struct {
	ID                 uuid.UUID             `json:"id"`
	Title              string                `json:"title"`
	Status             enums.PriceListStatus `json:"status"`
	Type               enums.PriceListType   `json:"type"`
	IsInflated         bool                  `json:"is_inflated"`
	DiscountPercentage float64               `json:"discount_percentage"`
	RestoreData        []RestoreEntry        `json:"restore_data"`
	Degraded           bool                  `json:"degraded,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// PriceListPage is a cursor page of price list summaries.
type PriceListPage struct {
	PriceLists []PriceListSummary `json:"price_lists"`
	Count      int                `json:"count"`
	NextCursor string             `json:"next_cursor,omitempty"`
}
