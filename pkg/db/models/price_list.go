package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/db/types"
	"github.com/lunarcart/storefront-backend/pkg/enums"
)

// PriceList is a named bundle of prices. Sale lists created by the
// applier carry is_inflated/discount_percentage/restore_data in Metadata;
// legacy lists encode the same facts inside Description.
type PriceList struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string                `gorm:"column:title;not null"`
	Name        string                `gorm:"column:name;not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	Status      enums.PriceListStatus `gorm:"column:status;not null;default:'draft'"`
	Type        enums.PriceListType   `gorm:"column:type;not null;default:'override'"`
	Metadata    types.JSONMap         `gorm:"column:metadata;type:jsonb"`
	Prices      []Price               `gorm:"foreignKey:PriceListID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
