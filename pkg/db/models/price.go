package models

import (
	"time"

	"github.com/google/uuid"
)

// Price is a single (amount, currency) tuple owned by one variant. A nil
// PriceListID marks it as the variant's base price for its context.
// Amounts are integers in the currency's minor unit.
type Price struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID   `gorm:"column:variant_id;type:uuid;not null;index"`
	CurrencyCode string      `gorm:"column:currency_code;not null"`
	Amount       int64       `gorm:"column:amount;not null"`
	PriceListID  *uuid.UUID  `gorm:"column:price_list_id;type:uuid;index"`
	Rules        []PriceRule `gorm:"foreignKey:PriceID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// IsBase reports whether the price belongs to no price list.
func (p Price) IsBase() bool {
	return p.PriceListID == nil
}
