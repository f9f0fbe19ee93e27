package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnia-sync/internal/adapters/woocommerce/dto"
	"omnia-sync/internal/config"
	"omnia-sync/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Debug(string)           {}
func (nopLogger) Log(string)             {}
func (nopLogger) LogError(string, error) {}
func (nopLogger) LogWarning(string)      {}
func (nopLogger) LogSuccess(string)      {}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.WooConfig{
		BaseUrl:        srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	}
	syncCfg := config.SyncConfig{
		FetchConcurrency: 3,
		RetryAttempts:    1,
		RetryBaseDelay:   time.Millisecond,
	}
	return NewClient(cfg, syncCfg, srv.Client(), nopLogger{})
}

func intPtr(v int) *int { return &v }

func TestListAllProductsAggregatesAndDedupes(t *testing.T) {
	pages := map[int][]dto.Product{
		1: {{ID: 1, SKU: "101"}, {ID: 2, SKU: "102"}},
		2: {{ID: 2, SKU: "102"}, {ID: 3, SKU: "103"}},
	}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)
		assert.Equal(t, "any", r.URL.Query().Get("status"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		w.Header().Set("X-WP-TotalPages", "2")
		_ = json.NewEncoder(w).Encode(pages[page])
	}))

	result, err := client.ListAllProducts(context.Background())

	require.NoError(t, err)
	assert.False(t, result.Partial())
	require.Len(t, result.Records, 3, "overlapping pages collapse by id")
	assert.Equal(t, "101", result.Records[0].SKU)
	assert.Equal(t, "103", result.Records[2].SKU)
}

func TestGetProductBySkuNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	product, err := client.GetProductBySku(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestGetProductBySkuMapsFirstMatch(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55", r.URL.Query().Get("sku"))
		_ = json.NewEncoder(w).Encode([]dto.Product{
			{ID: 77, SKU: "55", RegularPrice: "9.90", StockQuantity: intPtr(4)},
		})
	}))

	product, err := client.GetProductBySku(context.Background(), "55")

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, int64(77), product.ID)
	assert.Equal(t, 4, product.StockQuantity)
}

func TestCreateProductMapsSkuConflict(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"product_invalid_sku","message":"SKU inválido ou duplicado.","data":{"status":400,"resource_id":77,"unique_sku":"55"}}`))
	}))

	_, err := client.CreateProduct(context.Background(), dto.ProductPayload{SKU: "55"})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "55", conflict.SKU)
	assert.Equal(t, int64(77), conflict.ResourceID)
}

func TestCreateProductOtherErrorIsNotAConflict(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"internal_server_error","message":"boom"}`))
	}))

	_, err := client.CreateProduct(context.Background(), dto.ProductPayload{SKU: "55"})

	require.Error(t, err)
	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict))
}

func TestUpdateProductSendsPut(t *testing.T) {
	var gotMethod, gotPath string
	var gotPayload dto.ProductPayload
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(dto.Product{ID: 42})
	}))

	payload := BuildUpdatePayload(
		model.Product{Code: 42, Description: "Cabo HDMI"},
		8,
		model.PriceEntry{Code: 42, UnitPrice: decimal.NewFromFloat(10.5)},
	)
	updated, err := client.UpdateProduct(context.Background(), 42, payload)

	require.NoError(t, err)
	assert.Equal(t, int64(42), updated.ID)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/wp-json/wc/v3/products/42", gotPath)
	assert.Empty(t, gotPayload.SKU, "updates never rewrite the sku")
	assert.Equal(t, "10.50", gotPayload.RegularPrice)
	assert.Equal(t, 8, gotPayload.StockQuantity)
	assert.Equal(t, "instock", gotPayload.StockStatus)
}
