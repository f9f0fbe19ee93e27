package omnia

import (
	"context"
	"fmt"
	"net/url"

	"omnia-sync/internal/adapters/omnia/dto"
)

// ClientService covers the ERP customer registry used by order ingestion.
type ClientService interface {
	GetClientByDocument(ctx context.Context, document string) ([]dto.Client, error)
	CreateClient(ctx context.Context, req dto.CreateClientRequest) error
}

func (c *Client) GetClientByDocument(ctx context.Context, document string) ([]dto.Client, error) {
	if document == "" {
		return nil, fmt.Errorf("client document is empty")
	}

	var clients []dto.Client
	path := fmt.Sprintf("/api/clientes/%s/cnpjcpf", url.PathEscape(document))
	if err := c.getJSON(ctx, path, &clients); err != nil {
		return nil, fmt.Errorf("fetch client by document: %w", err)
	}
	return clients, nil
}

func (c *Client) CreateClient(ctx context.Context, req dto.CreateClientRequest) error {
	if err := c.postJSON(ctx, "/api/va/clientes", req, nil); err != nil {
		return fmt.Errorf("create omnia client: %w", err)
	}
	c.logger.Log(fmt.Sprintf("omnia client created document=%s", req.CgcEnt))
	return nil
}
