package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/enums"
)

// Product is the catalog listing whose variants carry prices.
type Product struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string              `gorm:"column:title;not null"`
	Handle    string              `gorm:"column:handle;not null;uniqueIndex"`
	Status    enums.ProductStatus `gorm:"column:status;not null;default:'draft'"`
	Variants  []Variant           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
