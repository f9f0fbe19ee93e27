package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PriceEntry is the effective price row for a product code. At most one
// entry per code survives into a plan (last one in feed order wins).
type PriceEntry struct {
	Code               int64
	UnitPrice          decimal.Decimal
	WholesaleMinQty    int
	WholesaleUnitPrice decimal.Decimal
}

// WholesaleRule derives the storefront tiered-price rule for this entry:
// {minimum quantity: wholesale unit price to 2 decimals} when a wholesale
// tier exists, otherwise an empty rule.
func (p PriceEntry) WholesaleRule() map[string]string {
	rule := map[string]string{}
	if p.WholesaleMinQty > 1 {
		rule[strconv.Itoa(p.WholesaleMinQty)] = p.WholesaleUnitPrice.Round(2).StringFixed(2)
	}
	return rule
}
