package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseUrl = "https://viacep.com.br"

// CityCodeService resolves a postal code (CEP) to the IBGE city code the
// ERP wants on clients and orders.
type CityCodeService interface {
	LookupIBGECode(ctx context.Context, cep string) (string, error)
}

type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseUrl: defaultBaseUrl, httpClient: httpClient}
}

type cepResponse struct {
	IBGE string `json:"ibge"`
	Erro bool   `json:"erro"`
}

func (c *Client) LookupIBGECode(ctx context.Context, cep string) (string, error) {
	cleaned := digitsOnly(cep)
	if cleaned == "" {
		return "", fmt.Errorf("viacep: empty cep")
	}

	url := fmt.Sprintf("%s/ws/%s/json/", strings.TrimRight(c.baseUrl, "/"), cleaned)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("viacep lookup: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("viacep lookup failed: %s", resp.Status)
	}

	var parsed cepResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Erro || parsed.IBGE == "" {
		return "", fmt.Errorf("viacep: cep %s not found", cleaned)
	}
	return parsed.IBGE, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
