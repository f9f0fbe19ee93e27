package usecases

import (
	"fmt"
	"maps"
	"math"

	"github.com/shopspring/decimal"

	"omnia-sync/internal/domain/model"
	"omnia-sync/internal/sku"
)

// ComputePlan diffs the ERP catalog against the storefront catalog and
// decides, per SKU, whether the record must be created, updated or deleted.
// The three lists are disjoint.
//
// Both sides are keyed by normalized SKU. When a side carries duplicate
// keys the last record in feed order wins. Stock rows are the exception:
// multiple rows per product code are warehouse balances and are summed.
func ComputePlan(
	products []model.Product,
	wooProducts []model.WooProduct,
	stocks []model.StockEntry,
	prices []model.PriceEntry,
) model.Plan {
	stockByCode := make(map[int64]float64, len(stocks))
	for _, s := range stocks {
		stockByCode[s.Code] += s.Quantity
	}

	priceByCode := make(map[int64]model.PriceEntry, len(prices))
	for _, p := range prices {
		priceByCode[p.Code] = p
	}

	productBySKU := make(map[string]model.Product, len(products))
	skuOrder := make([]string, 0, len(products))
	for _, p := range products {
		key := sku.Normalize(p.SKU())
		if key == "" {
			continue
		}
		if _, seen := productBySKU[key]; !seen {
			skuOrder = append(skuOrder, key)
		}
		productBySKU[key] = p
	}

	plan := model.Plan{}

	wooBySKU := make(map[string]model.WooProduct, len(wooProducts))
	wooOrder := make([]string, 0, len(wooProducts))
	for _, wp := range wooProducts {
		key := sku.Normalize(wp.SKU)
		if key == "" {
			plan.SkippedNoSKU++
			continue
		}
		if _, seen := wooBySKU[key]; !seen {
			wooOrder = append(wooOrder, key)
		}
		wooBySKU[key] = wp
	}

	for _, key := range skuOrder {
		product := productBySKU[key]
		price, hasPrice := priceByCode[product.Code]
		stockQty := int(math.Floor(stockByCode[product.Code]))
		existing, exists := wooBySKU[key]

		if !hasPrice {
			// Unpriced products are never published or refreshed; an
			// existing record keeps its current state.
			plan.SkippedNoPrice = append(plan.SkippedNoPrice, key)
			continue
		}

		if !exists {
			plan.ToCreate = append(plan.ToCreate, model.PlannedCreate{
				SKU:     key,
				Product: product,
				Stock:   stockQty,
				Price:   price,
			})
			continue
		}

		changes := detectChanges(existing, stockQty, price)
		if len(changes) == 0 {
			plan.Unchanged++
			continue
		}
		plan.ToUpdate = append(plan.ToUpdate, model.PlannedUpdate{
			SKU:     key,
			WooID:   existing.ID,
			Product: product,
			Stock:   stockQty,
			Price:   price,
			Changes: changes,
		})
	}

	for _, key := range wooOrder {
		if _, inERP := productBySKU[key]; inERP {
			continue
		}
		plan.ToDelete = append(plan.ToDelete, model.PlannedDelete{
			SKU:   key,
			WooID: wooBySKU[key].ID,
		})
	}

	return plan
}

// detectChanges compares the fields this integration owns. Prices compare
// at two decimals; an unparseable storefront price always counts as a
// change so the next update repairs it.
func detectChanges(existing model.WooProduct, stockQty int, price model.PriceEntry) []string {
	var changes []string

	if existing.StockQuantity != stockQty {
		changes = append(changes, fmt.Sprintf("stock: %d -> %d", existing.StockQuantity, stockQty))
	}

	wantPrice := price.UnitPrice.Round(2)
	currentPrice, err := decimal.NewFromString(existing.RegularPrice)
	if err != nil || !currentPrice.Round(2).Equal(wantPrice) {
		changes = append(changes, fmt.Sprintf("price: %s -> %s", existing.RegularPrice, wantPrice.StringFixed(2)))
	}

	if !maps.Equal(existing.TieredPriceRules(), price.WholesaleRule()) {
		changes = append(changes, "wholesale tiers")
	}

	return changes
}
