package enums

import "fmt"

// PriceListStatus represents the canonical price_list_status enum in Postgres.
type PriceListStatus string

const (
	PriceListStatusActive PriceListStatus = "active"
	PriceListStatusDraft  PriceListStatus = "draft"
)

var validPriceListStatuses = []PriceListStatus{
	PriceListStatusActive,
	PriceListStatusDraft,
}

// String implements fmt.Stringer.
func (s PriceListStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PriceListStatus.
func (s PriceListStatus) IsValid() bool {
	for _, candidate := range validPriceListStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePriceListStatus converts raw input into a PriceListStatus.
func ParsePriceListStatus(value string) (PriceListStatus, error) {
	for _, candidate := range validPriceListStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price list status %q", value)
}

// PriceListType distinguishes promotional sale lists from manual overrides.
type PriceListType string

const (
	PriceListTypeSale     PriceListType = "sale"
	PriceListTypeOverride PriceListType = "override"
)

var validPriceListTypes = []PriceListType{
	PriceListTypeSale,
	PriceListTypeOverride,
}

// String implements fmt.Stringer.
func (t PriceListType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known PriceListType.
func (t PriceListType) IsValid() bool {
	for _, candidate := range validPriceListTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePriceListType converts raw input into a PriceListType.
func ParsePriceListType(value string) (PriceListType, error) {
	for _, candidate := range validPriceListTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price list type %q", value)
}
