package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

type failingRegistry struct {
	failID string
	inner  *MemoryRegistry
}

func (f *failingRegistry) AddPage(ctx context.Context, page PageDescriptor) error {
	if page.ID == f.failID {
		return errors.New("registry unavailable")
	}
	return f.inner.AddPage(ctx, page)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func strPtr(s string) *string { return &s }

func TestProjectProduct(t *testing.T) {
	d := ProjectProduct(models.Product{ID: "p1", Name: "Wireless Headphones", Slug: "wireless-headphones", ShortDescription: "Premium sound"})
	assert.Equal(t, "products/wireless-headphones", d.URL)
	assert.Equal(t, "Premium sound", d.Description)
	require.Len(t, d.Components, 1)
	assert.Equal(t, WidgetProductDetail, d.Components[0].ID)
	assert.Equal(t, true, d.Components[0].Setting("EnableZoom"))
}

func TestProjectCategoryFiltersProductList(t *testing.T) {
	d := ProjectCategory(models.Category{ID: "c1", Name: "Electronics", Slug: "electronics", Description: "Gadgets"})
	assert.Equal(t, "categories/electronics", d.URL)
	assert.Equal(t, "Gadgets", d.Description)
	require.Len(t, d.Components, 1)
	assert.Equal(t, WidgetProductList, d.Components[0].ID)
	assert.Equal(t, "Electronics", d.Components[0].Setting("Category"))
	assert.Equal(t, "12", d.Components[0].Setting("ProductsPerPage"))
}

func TestProjectPage(t *testing.T) {
	d := ProjectPage(models.Page{ID: "pg1", Name: "About Us", Slug: "about-us"})
	assert.Equal(t, "about-us", d.URL)
	assert.Empty(t, d.Description)
	assert.NotNil(t, d.Components)
	assert.Empty(t, d.Components)

	d = ProjectPage(models.Page{ID: "pg2", Name: "Contact", Slug: "contact", MetaDescription: strPtr("Get in touch")})
	assert.Equal(t, "Get in touch", d.Description)
}

func TestFixedRoutesFollowSettings(t *testing.T) {
	settings := models.DefaultStoreSettings()
	settings.EnableGuestCheckout = false
	settings.RequirePhoneNumber = true

	routes := FixedRoutes(settings)
	require.Len(t, routes, 3)
	assert.Equal(t, []string{"shop", "cart", "checkout"}, []string{routes[0].URL, routes[1].URL, routes[2].URL})
	assert.Equal(t, "Shopping Cart", routes[1].Name)
	checkout := routes[2].Components[0]
	assert.Equal(t, false, checkout.Setting("EnableGuestCheckout"))
	assert.Equal(t, true, checkout.Setting("RequirePhone"))
	assert.Equal(t, "", routes[0].Components[0].Setting("Category"))

	for _, r := range routes {
		assert.True(t, store.IsReservedPageSlug(r.URL), "content pages must not publish over %s", r.URL)
	}
}

func TestGenerateAllPublishesEverything(t *testing.T) {
	snapshot := models.Snapshot{
		Products:      []models.Product{{ID: "p1", Slug: "a"}, {ID: "p2", Slug: "b"}},
		Categories:    []models.Category{{ID: "c1", Slug: "electronics"}},
		Pages:         []models.Page{{ID: "pg1", Slug: "about-us"}},
		StoreSettings: models.DefaultStoreSettings(),
	}
	registry := NewMemoryRegistry()
	result, err := NewProjector(registry, quietLogger()).GenerateAll(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Published)
	assert.Zero(t, result.Failed)

	urls := make([]string, 0, 7)
	for _, p := range registry.Pages() {
		urls = append(urls, p.URL)
	}
	assert.Equal(t, []string{"products/a", "products/b", "categories/electronics", "about-us", "shop", "cart", "checkout"}, urls)

	// regenerating replaces instead of duplicating
	_, err = NewProjector(registry, quietLogger()).GenerateAll(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Len(t, registry.Pages(), 7)
}

func TestGenerateAllContinuesPastFailures(t *testing.T) {
	registry := &failingRegistry{failID: "p1", inner: NewMemoryRegistry()}
	snapshot := models.Snapshot{
		Products:      []models.Product{{ID: "p1", Slug: "a"}},
		StoreSettings: models.DefaultStoreSettings(),
	}
	result, err := NewProjector(registry, quietLogger()).GenerateAll(context.Background(), snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unavailable")
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Published)
}

func TestCreatedEntitiesPublishTheirPage(t *testing.T) {
	st := store.New(
		store.WithIdentity(store.StaticIdentity(models.Actor{ID: "admin"})),
		store.WithLogger(quietLogger()),
	)
	registry := NewMemoryRegistry()
	projector := NewProjector(registry, quietLogger())
	st.Subscribe(projector.ChangeHandler(st))

	products, err := st.CreateProduct(context.Background(), models.CreateProductRequest{
		Name: "Wireless Headphones", Description: "Noise cancelling", Price: 199.99, SKU: "WH-001",
	})
	require.NoError(t, err)
	pages, err := st.CreatePage(context.Background(), models.CreatePageRequest{Name: "About Us"})
	require.NoError(t, err)
	_, err = st.CreateCategory(context.Background(), models.CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	projector.Wait()

	published := registry.Pages()
	require.Len(t, published, 2, "categories are only published by GenerateAll")
	got, ok := registry.Page(products[0].ID)
	require.True(t, ok)
	assert.Equal(t, "products/wireless-headphones", got.URL)
	got, ok = registry.Page(pages[0].ID)
	require.True(t, ok)
	assert.Equal(t, "about-us", got.URL)
}
