package sales

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

const (
	metadataKeyInflated     = "is_inflated"
	metadataKeyDiscount     = "discount_percentage"
	metadataKeyRestoreData  = "restore_data"
	metadataKeyAttachFailed = "metadata_attach_failed"

	// Legacy lists predate structured metadata and encode the same facts
	// in the description: an "inflated" marker, an "NN%" pattern, and a
	// RESTORE_DATA:<json> suffix. Read-only; never written.
	restoreDataMarker    = "RESTORE_DATA:"
	legacyInflatedMarker = "inflated"
)

var legacyPercentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// RestoreEntry records one inflated base price so reset can reverse the
// inflation exactly. It lives only inside price list metadata.
type RestoreEntry struct {
	PriceID        string `json:"price_id"`
	OriginalAmount int64  `json:"original_amount"`
	CurrencyCode   string `json:"currency_code"`
}

// SaleInfo is the decoded promotional state of a price list, from either
// metadata encoding. Degraded marks a list known to be inflated whose
// restore data could not be recovered.
type SaleInfo struct {
	IsInflated         bool
	DiscountPercentage float64
	RestoreData        []RestoreEntry
	Degraded           bool
}

// BuildSaleMetadata produces the structured metadata bag attached to a
// price list created by the sale applier.
func BuildSaleMetadata(isInflated bool, discountPercentage int, entries []RestoreEntry) map[string]any {
	md := map[string]any{
		metadataKeyInflated: isInflated,
		metadataKeyDiscount: discountPercentage,
	}
	if len(entries) > 0 {
		md[metadataKeyRestoreData] = entries
	} else {
		md[metadataKeyRestoreData] = nil
	}
	return md
}

// DecodeSaleInfo recovers a price list's promotional state. Precedence:
// structured metadata.restore_data if present as an array; else the
// legacy RESTORE_DATA description suffix; else inflation markers alone
// (inflated-but-unrecoverable). The returned error is non-fatal: it
// reports a malformed legacy payload the caller should log, with the
// info degraded rather than the decode aborted.
func DecodeSaleInfo(list *models.PriceList) (SaleInfo, error) {
	if list == nil {
		return SaleInfo{}, nil
	}

	info := SaleInfo{}
	md := map[string]any(list.Metadata)

	if md != nil {
		if v, ok := md[metadataKeyInflated].(bool); ok {
			info.IsInflated = v
		}
		info.DiscountPercentage = numericValue(md[metadataKeyDiscount])
	}
	if info.DiscountPercentage == 0 {
		info.DiscountPercentage = legacyPercent(list.Description)
	}

	if entries, ok := restoreEntriesFromMetadata(md); ok {
		info.RestoreData = entries
		return info, nil
	}

	var parseErr error
	if idx := strings.Index(list.Description, restoreDataMarker); idx >= 0 {
		payload := strings.TrimSpace(list.Description[idx+len(restoreDataMarker):])
		var entries []RestoreEntry
		if err := json.Unmarshal([]byte(payload), &entries); err != nil {
			parseErr = fmt.Errorf("parse legacy restore data: %w", err)
		} else {
			info.IsInflated = true
			info.RestoreData = entries
			return info, nil
		}
	}

	if info.IsInflated || strings.Contains(strings.ToLower(list.Description), legacyInflatedMarker) {
		info.IsInflated = true
		info.Degraded = true
	}
	if md != nil {
		if v, ok := md[metadataKeyAttachFailed].(bool); ok && v {
			info.Degraded = true
		}
	}

	return info, parseErr
}

func restoreEntriesFromMetadata(md map[string]any) ([]RestoreEntry, bool) {
	if md == nil {
		return nil, false
	}
	raw, ok := md[metadataKeyRestoreData]
	if !ok || raw == nil {
		return nil, false
	}

	switch typed := raw.(type) {
	case []RestoreEntry:
		return typed, true
	case []any:
		payload, err := json.Marshal(typed)
		if err != nil {
			return nil, false
		}
		var entries []RestoreEntry
		if err := json.Unmarshal(payload, &entries); err != nil {
			return nil, false
		}
		return entries, true
	default:
		return nil, false
	}
}

func legacyPercent(description string) float64 {
	match := legacyPercentPattern.FindStringSubmatch(description)
	if len(match) < 2 {
		return 0
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return value
}

func numericValue(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}
