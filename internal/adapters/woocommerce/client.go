package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"omnia-sync/internal/config"
	"omnia-sync/internal/logging"
)

const apiBasePath = "/wp-json/wc/v3"

type Client struct {
	cfg        config.WooConfig
	syncCfg    config.SyncConfig
	httpClient *http.Client
	logger     logging.LoggerService
}

func NewClient(cfg config.WooConfig, syncCfg config.SyncConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		cfg:        cfg,
		syncCfg:    syncCfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	base := strings.TrimRight(c.cfg.BaseUrl, "/") + apiBasePath + path
	if len(query) > 0 {
		base += "?" + query.Encode()
	}
	return base
}

// do issues one storefront request and decodes the response into out. The
// sku argument only feeds conflict detection on error responses; pass ""
// when the call cannot conflict. totalPages comes from the X-WP-TotalPages
// header on list responses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any, sku string) (totalPages int, err error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, wrapAPIError(resp.StatusCode, resp.Status, body, sku)
	}

	if header := resp.Header.Get("X-WP-TotalPages"); header != "" {
		if n, err := strconv.Atoi(header); err == nil {
			totalPages = n
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return 0, err
		}
	}
	return totalPages, nil
}
