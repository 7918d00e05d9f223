package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/pages"
)

func TestPageRegistryClientPostsDescriptor(t *testing.T) {
	var got pages.PageDescriptor
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/pages", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewPageRegistryClient(Config{BaseURL: server.URL + "/", Token: "svc-token"})
	page := pages.FixedRoutes(models.DefaultStoreSettings())[0]
	require.NoError(t, client.AddPage(context.Background(), page))
	assert.Equal(t, "shop", got.URL)
	require.Len(t, got.Components, 1)
	assert.Equal(t, pages.WidgetProductList, got.Components[0].ID)
}

func TestMediaClientReportsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/media", r.URL.Path)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewMediaClient(Config{BaseURL: server.URL})
	err := client.AddMedia(context.Background(), models.Media{ID: "m1", URL: "https://cdn.example.com/a.png", Type: models.MediaTypeImage})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "media", apiErr.Service)
	assert.Contains(t, apiErr.Error(), "upstream down")
}

func TestRateLimiterHonoursCancelledContext(t *testing.T) {
	client := NewMediaClient(Config{BaseURL: "http://127.0.0.1:0", RequestsPerSec: 0.001})
	// consume the single burst token
	client.rateLimiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, client.AddMedia(ctx, models.Media{ID: "m1"}))
}
