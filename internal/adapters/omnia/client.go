package omnia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"omnia-sync/internal/config"
	"omnia-sync/internal/logging"
)

// tokens are short-lived; refresh a little early instead of racing expiry.
const tokenTTL = 10 * time.Minute

type Client struct {
	cfg        config.OmniaConfig
	syncCfg    config.SyncConfig
	httpClient *http.Client
	logger     logging.LoggerService

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg config.OmniaConfig, syncCfg config.SyncConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
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

type statusError struct {
	status string
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("omnia request failed: %s", e.status)
	}
	return fmt.Sprintf("omnia request failed: %s: %s", e.status, e.body)
}

type authResponse struct {
	Token string `json:"token"`
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	if c.cfg.Username == "" || c.cfg.Password == "" {
		return "", fmt.Errorf("omnia credentials are not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseUrl+"/token", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("omnia authentication: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("omnia authentication: %w", &statusError{status: resp.Status, body: strings.TrimSpace(string(body))})
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", fmt.Errorf("omnia authentication: %w", err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("omnia authentication: empty token in response")
	}

	c.token = auth.Token
	c.tokenExp = time.Now().Add(tokenTTL)
	return c.token, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseUrl+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{status: resp.Status, body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
