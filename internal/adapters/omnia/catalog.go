package omnia

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"omnia-sync/internal/adapters/omnia/dto"
	"omnia-sync/internal/domain/model"
	"omnia-sync/internal/pagination"
)

// CatalogService is the ERP side of a reconciliation pass: the full product
// master, the stock rows and the price list, each drained from its
// paginated endpoint.
type CatalogService interface {
	FetchProducts(ctx context.Context) (pagination.Result[model.Product], error)
	FetchStock(ctx context.Context) (pagination.Result[model.StockEntry], error)
	FetchPrices(ctx context.Context) (pagination.Result[model.PriceEntry], error)
}

func (c *Client) FetchProducts(ctx context.Context) (pagination.Result[model.Product], error) {
	res, err := fetchResource(ctx, c, "/api/v1/produtos", mapProduct)
	if err != nil {
		return res, fmt.Errorf("fetch omnia products: %w", err)
	}
	return res, nil
}

func (c *Client) FetchStock(ctx context.Context) (pagination.Result[model.StockEntry], error) {
	res, err := fetchResource(ctx, c, "/api/v1/estoques", mapStock)
	if err != nil {
		return res, fmt.Errorf("fetch omnia stock: %w", err)
	}
	return res, nil
}

func (c *Client) FetchPrices(ctx context.Context) (pagination.Result[model.PriceEntry], error) {
	res, err := fetchResource(ctx, c, "/api/v1/precos", mapPrice)
	if err != nil {
		return res, fmt.Errorf("fetch omnia prices: %w", err)
	}
	return res, nil
}

func fetchResource[D, T any](ctx context.Context, c *Client, endpoint string, mapFn func(D) T) (pagination.Result[T], error) {
	pageSize := c.syncCfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	opts := pagination.Options{
		Concurrency:    c.syncCfg.FetchConcurrency,
		MaxRetries:     c.syncCfg.RetryAttempts,
		RetryBaseDelay: c.syncCfg.RetryBaseDelay,
	}

	return pagination.FetchAll(ctx, opts, func(ctx context.Context, page int) (pagination.Page[T], error) {
		var envelope dto.PaginatedResponse[D]
		path := fmt.Sprintf("%s?page=%d&pagesize=%d", endpoint, page, pageSize)
		if err := c.getJSON(ctx, path, &envelope); err != nil {
			return pagination.Page[T]{}, err
		}

		records := make([]T, 0, len(envelope.Data))
		for _, item := range envelope.Data {
			records = append(records, mapFn(item))
		}
		return pagination.Page[T]{Records: records, TotalPages: envelope.Pagination.TotalPages}, nil
	})
}

func mapProduct(d dto.Product) model.Product {
	return model.Product{
		Code:             d.CodProd,
		Description:      d.Descricao,
		EcommerceName:    d.NomeEcommerce,
		ShortDescription: d.DescricaoCurta,
		LongDescription:  d.DescricaoLonga,
		NetWeightGrams:   d.PesoLiqGr,
		LengthCM:         d.ComprimentoCm,
		WidthCM:          d.LarguraCm,
		HeightCM:         d.AlturaCm,
	}
}

func mapStock(d dto.Stock) model.StockEntry {
	return model.StockEntry{
		Code:     d.CodProd,
		Quantity: d.Estoque,
	}
}

func mapPrice(d dto.Price) model.PriceEntry {
	return model.PriceEntry{
		Code:               d.CodProd,
		UnitPrice:          decimal.NewFromFloat(d.PVenda),
		WholesaleMinQty:    d.QtMinimaAtacado,
		WholesaleUnitPrice: decimal.NewFromFloat(d.PVendaAtacado),
	}
}
