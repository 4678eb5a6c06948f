package pricing

import (
	"sort"

	"github.com/google/uuid"

	"github.com/lunarcart/storefront-backend/pkg/db/models"
)

// Context is a derived (currency, region) scoping key for a price. It is
// recomputed on every read and never persisted.
type Context struct {
	Key          string  `json:"key"`
	CurrencyCode string  `json:"currency_code"`
	RegionID     *string `json:"region_id,omitempty"`
	RegionName   *string `json:"region_name,omitempty"`
}

// AnnotatedPrice pairs a price with the key of the context it belongs to.
type AnnotatedPrice struct {
	Price      models.Price `json:"price"`
	ContextKey string       `json:"context_key"`
}

// RegionByPrice extracts the price_id -> region_id mapping from a rule set,
// ignoring rules for any other attribute.
func RegionByPrice(rules []models.PriceRule) map[uuid.UUID]string {
	byPrice := make(map[uuid.UUID]string, len(rules))
	for _, rule := range rules {
		if rule.Attribute != models.RuleAttributeRegion {
			continue
		}
		byPrice[rule.PriceID] = rule.Value
	}
	return byPrice
}

// Resolve derives the deduplicated, sorted context list for a price set and
// annotates each price with its context key. A region id with no directory
// entry still yields a working context keyed by id; the name is simply
// absent.
func Resolve(prices []models.Price, regionByPrice map[uuid.UUID]string, regionNames map[string]string) ([]Context, []AnnotatedPrice) {
	seen := make(map[string]Context, len(prices))
	order := make([]string, 0, len(prices))
	annotated := make([]AnnotatedPrice, 0, len(prices))

	for _, price := range prices {
		key := price.CurrencyCode + "|base"
		var regionID, regionName *string
		if rid, ok := regionByPrice[price.ID]; ok && rid != "" {
			key = price.CurrencyCode + "|" + rid
			id := rid
			regionID = &id
			if name, ok := regionNames[rid]; ok {
				n := name
				regionName = &n
			}
		}

		if _, ok := seen[key]; !ok {
			seen[key] = Context{
				Key:          key,
				CurrencyCode: price.CurrencyCode,
				RegionID:     regionID,
				RegionName:   regionName,
			}
			order = append(order, key)
		}

		annotated = append(annotated, AnnotatedPrice{Price: price, ContextKey: key})
	}

	contexts := make([]Context, 0, len(order))
	for _, key := range order {
		contexts = append(contexts, seen[key])
	}

	sort.SliceStable(contexts, func(i, j int) bool {
		a, b := contexts[i], contexts[j]
		aBase, bBase := a.RegionID == nil, b.RegionID == nil
		if aBase != bBase {
			return aBase
		}
		if a.CurrencyCode != b.CurrencyCode {
			return a.CurrencyCode < b.CurrencyCode
		}
		return regionNameOf(a) < regionNameOf(b)
	})

	return contexts, annotated
}

func regionNameOf(c Context) string {
	if c.RegionName == nil {
		return ""
	}
	return *c.RegionName
}
