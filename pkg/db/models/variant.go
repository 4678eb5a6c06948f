package models

import (
	"time"

	"github.com/google/uuid"
)

// Variant is a purchasable option of a Product. The pricing engine only
// touches its prices.
type Variant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Prices    []Price   `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
