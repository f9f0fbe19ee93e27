package woocommerce

import (
	"encoding/json"
	"fmt"
	"strings"

	"omnia-sync/internal/adapters/woocommerce/dto"
)

// ConflictError reports a create call that collided with an existing SKU.
// The orchestrator recovers by looking the record up and updating it.
type ConflictError struct {
	SKU        string
	ResourceID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("woocommerce sku already exists: %s", e.SKU)
}

type httpStatusError struct {
	statusCode int
	status     string
	body       string
}

func (e *httpStatusError) Error() string {
	if strings.TrimSpace(e.body) == "" {
		return fmt.Sprintf("woocommerce request failed: %s", e.status)
	}
	return fmt.Sprintf("woocommerce request failed: %s: %s", e.status, e.body)
}

// wrapAPIError turns an error response body into a ConflictError when the
// storefront reports a duplicate SKU, and a status error otherwise.
func wrapAPIError(statusCode int, status string, body []byte, sku string) error {
	var apiErr dto.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		switch apiErr.Code {
		case "product_invalid_sku", "woocommerce_rest_product_sku_already_exists":
			conflictSKU := apiErr.Data.UniqueSKU
			if conflictSKU == "" {
				conflictSKU = sku
			}
			return &ConflictError{SKU: conflictSKU, ResourceID: apiErr.Data.ResourceID}
		}
	}
	return &httpStatusError{
		statusCode: statusCode,
		status:     status,
		body:       strings.TrimSpace(string(body)),
	}
}
