package woocommerce

import (
	"fmt"
	"math"

	"omnia-sync/internal/adapters/woocommerce/dto"
	"omnia-sync/internal/domain/model"
)

// BuildCreatePayload maps an ERP record plus its aggregated stock and price
// into a publishable storefront product.
func BuildCreatePayload(product model.Product, stockQty int, price model.PriceEntry) dto.ProductPayload {
	payload := buildPayload(product, stockQty, price)
	payload.SKU = product.SKU()
	return payload
}

// BuildUpdatePayload is BuildCreatePayload without the SKU: the SKU is the
// join key and never rewritten on an existing record.
func BuildUpdatePayload(product model.Product, stockQty int, price model.PriceEntry) dto.ProductPayload {
	return buildPayload(product, stockQty, price)
}

func buildPayload(product model.Product, stockQty int, price model.PriceEntry) dto.ProductPayload {
	stockStatus := "outofstock"
	if stockQty > 0 {
		stockStatus = "instock"
	}

	payload := dto.ProductPayload{
		Name:             product.DisplayName(),
		Description:      product.LongDescription,
		ShortDescription: product.ShortDescription,
		RegularPrice:     price.UnitPrice.Round(2).StringFixed(2),
		ManageStock:      true,
		StockQuantity:    stockQty,
		StockStatus:      stockStatus,
		Type:             "simple",
		Status:           "publish",
		MetaData: []dto.MetaEntry{
			{Key: model.MetaKeyTieredPriceType, Value: model.TieredPriceTypeFixed},
			{Key: model.MetaKeyFixedPriceRules, Value: price.WholesaleRule()},
		},
	}

	if product.NetWeightGrams > 0 {
		payload.Weight = fmt.Sprintf("%g", product.NetWeightGrams/1000)
	}
	payload.Dimensions = buildDimensions(product)

	return payload
}

func buildDimensions(product model.Product) *dto.Dimensions {
	dims := dto.Dimensions{}
	set := false
	if product.LengthCM > 0 {
		dims.Length = formatDimension(product.LengthCM)
		set = true
	}
	if product.WidthCM > 0 {
		dims.Width = formatDimension(product.WidthCM)
		set = true
	}
	if product.HeightCM > 0 {
		dims.Height = formatDimension(product.HeightCM)
		set = true
	}
	if !set {
		return nil
	}
	return &dims
}

func formatDimension(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
