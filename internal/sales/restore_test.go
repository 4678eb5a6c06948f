package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
	"github.com/lunarcart/storefront-backend/pkg/db/types"
)

func TestBuildSaleMetadataRoundTrip(t *testing.T) {
	entries := []RestoreEntry{
		{PriceID: "p1", OriginalAmount: 1000, CurrencyCode: "usd"},
		{PriceID: "p2", OriginalAmount: 2000, CurrencyCode: "eur"},
	}

	md := BuildSaleMetadata(true, 25, entries)
	list := &models.PriceList{Metadata: types.JSONMap(md)}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.True(t, info.IsInflated)
	assert.Equal(t, float64(25), info.DiscountPercentage)
	require.Len(t, info.RestoreData, 2)
	assert.Equal(t, entries, info.RestoreData)
	assert.False(t, info.Degraded)
}

func TestDecodeSaleInfoFromStoredMetadata(t *testing.T) {
	// Shape after a JSONB round trip: []any of map[string]any, float64 amounts.
	list := &models.PriceList{
		Metadata: types.JSONMap{
			"is_inflated":         true,
			"discount_percentage": float64(40),
			"restore_data": []any{
				map[string]any{"price_id": "p1", "original_amount": float64(1000), "currency_code": "usd"},
			},
		},
	}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.True(t, info.IsInflated)
	assert.Equal(t, float64(40), info.DiscountPercentage)
	require.Len(t, info.RestoreData, 1)
	assert.Equal(t, "p1", info.RestoreData[0].PriceID)
	assert.Equal(t, int64(1000), info.RestoreData[0].OriginalAmount)
}

func TestDecodeSaleInfoLegacyDescription(t *testing.T) {
	list := &models.PriceList{
		Description: `Spring promo inflated 40% RESTORE_DATA:[{"price_id":"p1","original_amount":1000,"currency_code":"usd"}]`,
	}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.True(t, info.IsInflated)
	assert.Equal(t, float64(40), info.DiscountPercentage)
	require.Len(t, info.RestoreData, 1)
	assert.Equal(t, "p1", info.RestoreData[0].PriceID)
	assert.Equal(t, int64(1000), info.RestoreData[0].OriginalAmount)
	assert.Equal(t, "usd", info.RestoreData[0].CurrencyCode)
	assert.False(t, info.Degraded)
}

func TestDecodeSaleInfoMetadataWinsOverDescription(t *testing.T) {
	list := &models.PriceList{
		Description: `legacy 10% RESTORE_DATA:[{"price_id":"legacy","original_amount":1,"currency_code":"usd"}]`,
		Metadata: types.JSONMap{
			"is_inflated":         true,
			"discount_percentage": float64(30),
			"restore_data": []any{
				map[string]any{"price_id": "structured", "original_amount": float64(500), "currency_code": "usd"},
			},
		},
	}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	require.Len(t, info.RestoreData, 1)
	assert.Equal(t, "structured", info.RestoreData[0].PriceID)
	assert.Equal(t, float64(30), info.DiscountPercentage)
}

func TestDecodeSaleInfoMalformedLegacyPayload(t *testing.T) {
	list := &models.PriceList{
		Description: "inflated 15% RESTORE_DATA:{not json",
	}

	info, err := DecodeSaleInfo(list)
	require.Error(t, err)
	assert.True(t, info.IsInflated)
	assert.Empty(t, info.RestoreData)
	assert.True(t, info.Degraded)
	assert.Equal(t, float64(15), info.DiscountPercentage)
}

func TestDecodeSaleInfoInflatedMarkerOnly(t *testing.T) {
	list := &models.PriceList{Description: "Inflated spring sale"}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.True(t, info.IsInflated)
	assert.True(t, info.Degraded)
	assert.Empty(t, info.RestoreData)
}

func TestDecodeSaleInfoAttachFailedFlag(t *testing.T) {
	list := &models.PriceList{
		Metadata: types.JSONMap{
			"is_inflated":            true,
			"metadata_attach_failed": true,
		},
	}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.True(t, info.Degraded)
}

func TestDecodeSaleInfoPlainList(t *testing.T) {
	list := &models.PriceList{Description: "B2B override list"}

	info, err := DecodeSaleInfo(list)
	require.NoError(t, err)
	assert.False(t, info.IsInflated)
	assert.False(t, info.Degraded)
	assert.Empty(t, info.RestoreData)
}

func TestDecodeSaleInfoNil(t *testing.T) {
	info, err := DecodeSaleInfo(nil)
	require.NoError(t, err)
	assert.False(t, info.IsInflated)
}
