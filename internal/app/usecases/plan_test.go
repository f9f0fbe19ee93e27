package usecases

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnia-sync/internal/domain/model"
)

func price(code int64, value float64) model.PriceEntry {
	return model.PriceEntry{Code: code, UnitPrice: decimal.NewFromFloat(value)}
}

func TestComputePlanPartitionsBySkuPresence(t *testing.T) {
	products := []model.Product{
		{Code: 101, Description: "Cabo HDMI"},
		{Code: 102, Description: "Mouse"},
	}
	stocks := []model.StockEntry{
		{Code: 101, Quantity: 5},
	}
	prices := []model.PriceEntry{
		price(101, 10.00),
		price(102, 20.00),
	}
	wooProducts := []model.WooProduct{
		{ID: 1, SKU: "101", RegularPrice: "10.00", StockQuantity: 5},
		{ID: 2, SKU: "103", RegularPrice: "5.00"},
	}

	plan := ComputePlan(products, wooProducts, stocks, prices)

	require.Len(t, plan.ToCreate, 1)
	assert.Equal(t, "102", plan.ToCreate[0].SKU)
	assert.Equal(t, 0, plan.ToCreate[0].Stock)

	assert.Empty(t, plan.ToUpdate, "matched record with identical fields must not be rewritten")
	assert.Equal(t, 1, plan.Unchanged)

	require.Len(t, plan.ToDelete, 1)
	assert.Equal(t, "103", plan.ToDelete[0].SKU)
	assert.Equal(t, int64(2), plan.ToDelete[0].WooID)
}

func TestComputePlanNeverListsSkuTwice(t *testing.T) {
	products := []model.Product{{Code: 1}, {Code: 2}, {Code: 3}}
	prices := []model.PriceEntry{price(1, 1), price(2, 2), price(3, 3)}
	wooProducts := []model.WooProduct{
		{ID: 10, SKU: "2", RegularPrice: "9.99"},
		{ID: 11, SKU: "4"},
	}

	plan := ComputePlan(products, wooProducts, nil, prices)

	seen := map[string]int{}
	for _, c := range plan.ToCreate {
		seen[c.SKU]++
	}
	for _, u := range plan.ToUpdate {
		seen[u.SKU]++
	}
	for _, d := range plan.ToDelete {
		seen[d.SKU]++
	}
	for sku, count := range seen {
		assert.Equalf(t, 1, count, "sku %s appears in more than one list", sku)
	}
}

func TestComputePlanSumsStockAcrossWarehouses(t *testing.T) {
	products := []model.Product{{Code: 7}}
	stocks := []model.StockEntry{
		{Code: 7, Quantity: 5},
		{Code: 7, Quantity: 3.2},
	}
	prices := []model.PriceEntry{price(7, 49.90)}

	plan := ComputePlan(products, nil, stocks, prices)

	require.Len(t, plan.ToCreate, 1)
	assert.Equal(t, 8, plan.ToCreate[0].Stock, "fractional balances truncate after summing")
}

func TestComputePlanLastPriceRowWins(t *testing.T) {
	products := []model.Product{{Code: 7}}
	prices := []model.PriceEntry{
		price(7, 10.00),
		price(7, 12.50),
	}

	plan := ComputePlan(products, nil, nil, prices)

	require.Len(t, plan.ToCreate, 1)
	assert.True(t, plan.ToCreate[0].Price.UnitPrice.Equal(decimal.NewFromFloat(12.50)))
}

// Duplicate SKUs on the storefront side resolve the same way as duplicate
// price rows: the last record in feed order wins.
func TestComputePlanLastStorefrontDuplicateWins(t *testing.T) {
	wooProducts := []model.WooProduct{
		{ID: 10, SKU: "55"},
		{ID: 11, SKU: "55"},
	}

	plan := ComputePlan(nil, wooProducts, nil, nil)

	require.Len(t, plan.ToDelete, 1)
	assert.Equal(t, int64(11), plan.ToDelete[0].WooID)
}

func TestComputePlanSkipsUnpricedProducts(t *testing.T) {
	products := []model.Product{
		{Code: 1},
		{Code: 2},
	}
	prices := []model.PriceEntry{price(2, 15.00)}
	wooProducts := []model.WooProduct{
		{ID: 20, SKU: "1", RegularPrice: "99.00", StockQuantity: 99},
	}

	plan := ComputePlan(products, wooProducts, nil, prices)

	assert.Equal(t, []string{"1"}, plan.SkippedNoPrice)
	require.Len(t, plan.ToCreate, 1)
	assert.Equal(t, "2", plan.ToCreate[0].SKU)
	// The stale record keeps its state: not updated, but not deleted either
	// since the ERP still knows the product.
	assert.Empty(t, plan.ToUpdate)
	assert.Empty(t, plan.ToDelete)
}

func TestComputePlanExcludesRecordsWithoutSku(t *testing.T) {
	wooProducts := []model.WooProduct{
		{ID: 30, SKU: ""},
		{ID: 31, SKU: "  "},
		{ID: 32, SKU: "77"},
	}

	plan := ComputePlan(nil, wooProducts, nil, nil)

	assert.Equal(t, 2, plan.SkippedNoSKU)
	require.Len(t, plan.ToDelete, 1)
	assert.Equal(t, int64(32), plan.ToDelete[0].WooID)
}

func TestDetectChangesStock(t *testing.T) {
	existing := model.WooProduct{StockQuantity: 5, RegularPrice: "10.00"}

	changes := detectChanges(existing, 8, price(1, 10.00))

	require.Len(t, changes, 1)
	assert.Equal(t, "stock: 5 -> 8", changes[0])
}

func TestDetectChangesPriceComparesAtTwoDecimals(t *testing.T) {
	existing := model.WooProduct{StockQuantity: 5, RegularPrice: "10.00"}

	assert.Empty(t, detectChanges(existing, 5, price(1, 10.004)), "sub-cent difference rounds away")

	changes := detectChanges(existing, 5, price(1, 10.01))
	require.Len(t, changes, 1)
	assert.Equal(t, "price: 10.00 -> 10.01", changes[0])
}

func TestDetectChangesUnparseablePriceAlwaysRepairs(t *testing.T) {
	existing := model.WooProduct{RegularPrice: ""}

	changes := detectChanges(existing, 0, price(1, 10.00))

	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "price:")
}

func TestDetectChangesWholesaleTiers(t *testing.T) {
	existing := model.WooProduct{
		StockQuantity: 5,
		RegularPrice:  "100.00",
		MetaData: []model.MetaEntry{
			{Key: model.MetaKeyFixedPriceRules, Value: map[string]any{"5": "90.00"}},
		},
	}
	entry := model.PriceEntry{
		Code:               1,
		UnitPrice:          decimal.NewFromFloat(100.00),
		WholesaleMinQty:    10,
		WholesaleUnitPrice: decimal.NewFromFloat(85.00),
	}

	changes := detectChanges(existing, 5, entry)

	require.Len(t, changes, 1)
	assert.Equal(t, "wholesale tiers", changes[0])

	// Same tier on both sides compares equal.
	existing.MetaData[0].Value = map[string]any{"10": "85.00"}
	assert.Empty(t, detectChanges(existing, 5, entry))
}
