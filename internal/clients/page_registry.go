package clients

import (
	"context"
	"net/http"

	"storefront-service/internal/pages"
)

// PageRegistryClient publishes site pages to the site builder
type PageRegistryClient struct {
	baseClient
}

// NewPageRegistryClient creates a client for the page registry at cfg.BaseURL
func NewPageRegistryClient(cfg Config) *PageRegistryClient {
	return &PageRegistryClient{baseClient: newBaseClient("page-registry", cfg)}
}

// AddPage upserts a page by id
func (c *PageRegistryClient) AddPage(ctx context.Context, page pages.PageDescriptor) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/v1/pages", page)
	return err
}
