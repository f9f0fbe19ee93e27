package woocommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"omnia-sync/internal/adapters/woocommerce/dto"
	"omnia-sync/internal/domain/model"
	"omnia-sync/internal/pagination"
)

const listPageSize = 100

// ProductService is the storefront side of a reconciliation pass.
type ProductService interface {
	ListAllProducts(ctx context.Context) (pagination.Result[model.WooProduct], error)
	GetProductBySku(ctx context.Context, sku string) (*model.WooProduct, error)
	CreateProduct(ctx context.Context, payload dto.ProductPayload) (model.WooProduct, error)
	UpdateProduct(ctx context.Context, id int64, payload dto.ProductPayload) (model.WooProduct, error)
	RetireProduct(ctx context.Context, id int64) error
	DeleteProduct(ctx context.Context, id int64) error
}

// ListAllProducts drains the full storefront catalog in capped-concurrency
// waves, every status included so trashed and draft records still match.
// The API occasionally returns overlapping pages, so records are
// deduplicated by id after aggregation.
func (c *Client) ListAllProducts(ctx context.Context) (pagination.Result[model.WooProduct], error) {
	opts := pagination.Options{
		Concurrency:    c.syncCfg.FetchConcurrency,
		MaxRetries:     c.syncCfg.RetryAttempts,
		RetryBaseDelay: c.syncCfg.RetryBaseDelay,
	}

	result, err := pagination.FetchAll(ctx, opts, func(ctx context.Context, page int) (pagination.Page[model.WooProduct], error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(listPageSize))
		query.Set("orderby", "id")
		query.Set("order", "asc")
		query.Set("status", "any")

		var products []dto.Product
		totalPages, err := c.do(ctx, http.MethodGet, "/products", query, nil, &products, "")
		if err != nil {
			return pagination.Page[model.WooProduct]{}, err
		}

		records := make([]model.WooProduct, 0, len(products))
		for _, p := range products {
			records = append(records, mapProduct(p))
		}
		return pagination.Page[model.WooProduct]{Records: records, TotalPages: totalPages}, nil
	})
	if err != nil {
		return result, fmt.Errorf("fetch woocommerce products: %w", err)
	}

	result.Records = dedupeByID(result.Records)
	return result, nil
}

func (c *Client) GetProductBySku(ctx context.Context, sku string) (*model.WooProduct, error) {
	if sku == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("sku", sku)
	query.Set("status", "publish,draft,trash")

	var products []dto.Product
	if _, err := c.do(ctx, http.MethodGet, "/products", query, nil, &products, ""); err != nil {
		return nil, fmt.Errorf("lookup woocommerce product sku=%s: %w", sku, err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	product := mapProduct(products[0])
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, payload dto.ProductPayload) (model.WooProduct, error) {
	var created dto.Product
	if _, err := c.do(ctx, http.MethodPost, "/products", nil, payload, &created, payload.SKU); err != nil {
		return model.WooProduct{}, err
	}
	return mapProduct(created), nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, payload dto.ProductPayload) (model.WooProduct, error) {
	var updated dto.Product
	path := fmt.Sprintf("/products/%d", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, payload, &updated, payload.SKU); err != nil {
		return model.WooProduct{}, err
	}
	return mapProduct(updated), nil
}

// RetireProduct moves a record to the trash (soft delete); the record keeps
// its SKU and can still be found by lookup.
func (c *Client) RetireProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/products/%d", id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil, ""); err != nil {
		return fmt.Errorf("retire woocommerce product id=%d: %w", id, err)
	}
	return nil
}

// DeleteProduct permanently removes a record.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	query := url.Values{}
	query.Set("force", "true")
	path := fmt.Sprintf("/products/%d", id)
	if _, err := c.do(ctx, http.MethodDelete, path, query, nil, nil, ""); err != nil {
		return fmt.Errorf("delete woocommerce product id=%d: %w", id, err)
	}
	return nil
}

func mapProduct(d dto.Product) model.WooProduct {
	quantity := 0
	if d.StockQuantity != nil {
		quantity = *d.StockQuantity
	}

	meta := make([]model.MetaEntry, 0, len(d.MetaData))
	for _, m := range d.MetaData {
		meta = append(meta, model.MetaEntry{Key: m.Key, Value: m.Value})
	}

	return model.WooProduct{
		ID:            d.ID,
		SKU:           d.SKU,
		Name:          d.Name,
		RegularPrice:  d.RegularPrice,
		StockQuantity: quantity,
		Status:        d.Status,
		MetaData:      meta,
	}
}

func dedupeByID(products []model.WooProduct) []model.WooProduct {
	seen := make(map[int64]bool, len(products))
	unique := products[:0]
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		unique = append(unique, p)
	}
	return unique
}
