package models

import (
	"time"

	"github.com/google/uuid"
)

// RuleAttributeRegion is the only rule attribute the pricing engine
// reads or writes; it scopes a price to a region.
const RuleAttributeRegion = "region_id"

// PriceRule is an attribute/value annotation on a price.
type PriceRule struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PriceID   uuid.UUID `gorm:"column:price_id;type:uuid;not null;index"`
	Attribute string    `gorm:"column:attribute;not null"`
	Value     string    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
