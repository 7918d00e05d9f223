package clients

import (
	"context"
	"net/http"

	"storefront-service/internal/models"
)

// MediaClient registers product images with the media library
type MediaClient struct {
	baseClient
}

// NewMediaClient creates a client for the media service at cfg.BaseURL
func NewMediaClient(cfg Config) *MediaClient {
	return &MediaClient{baseClient: newBaseClient("media", cfg)}
}

func (c *MediaClient) AddMedia(ctx context.Context, media models.Media) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/v1/media", media)
	return err
}
