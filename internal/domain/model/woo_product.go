package model

import (
	"encoding/json"
	"fmt"
)

// WooProduct is a storefront catalog record. SKU may be empty; such records
// never participate in matching, updates or deletes.
type WooProduct struct {
	ID            int64
	SKU           string
	Name          string
	RegularPrice  string
	StockQuantity int
	Status        string
	MetaData      []MetaEntry
}

type MetaEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

const (
	MetaKeyTieredPriceType = "_tiered_price_rules_type"
	MetaKeyFixedPriceRules = "_fixed_price_rules"
	TieredPriceTypeFixed   = "fixed"
)

// TieredPriceRules extracts the stored wholesale-tier rule as
// {minimum quantity: unit price}. WooCommerce serializes an empty rule
// either as an empty object or an empty array, both of which come back as an
// empty map here.
func (p WooProduct) TieredPriceRules() map[string]string {
	rules := map[string]string{}
	for _, meta := range p.MetaData {
		if meta.Key != MetaKeyFixedPriceRules {
			continue
		}
		raw, ok := meta.Value.(map[string]any)
		if !ok {
			return rules
		}
		for qty, price := range raw {
			rules[qty] = stringifyMetaValue(price)
		}
		return rules
	}
	return rules
}

func stringifyMetaValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
