package omnia

import (
	"context"
	"fmt"

	"omnia-sync/internal/adapters/omnia/dto"
)

// OrderService forwards storefront orders into the ERP.
type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) error
}

func (c *Client) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) error {
	if err := c.postJSON(ctx, "/api/v1/pedidos", req, nil); err != nil {
		return fmt.Errorf("create omnia order: %w", err)
	}
	c.logger.Log(fmt.Sprintf("omnia order created numpedweb=%s", req.NumPedWeb))
	return nil
}
