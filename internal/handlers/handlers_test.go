package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/auth"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/pages"
	"storefront-service/internal/reports"
	"storefront-service/internal/seed"
	"storefront-service/internal/store"
)

const testSecret = "handlers-test-secret"

type testEnv struct {
	router   *gin.Engine
	store    *store.Store
	registry *pages.MemoryRegistry
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	st := store.New(
		store.WithIdentity(store.IdentityFunc(auth.ActorFromContext)),
		store.WithConfirmer(store.ContextConfirmer{}),
		store.WithLogger(logger),
	)
	st.Load(seed.Snapshot(seed.ProfileDemo))

	registry := pages.NewMemoryRegistry()
	projector := pages.NewProjector(registry, logger)
	st.Subscribe(projector.ChangeHandler(st))
	t.Cleanup(projector.Wait)

	tokens := auth.NewTokenManager(testSecret)
	token, err := tokens.Issue(models.Actor{ID: "admin-1", Email: "admin@example.com"}, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Auth(tokens, false, logger), middleware.Confirmation())
	RegisterRoutes(router.Group("/api/v1"), st, projector, logger)
	return &testEnv{router: router, store: st, registry: registry, token: token}
}

type call struct {
	method  string
	path    string
	body    interface{}
	auth    bool
	confirm bool
}

func (e *testEnv) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.auth {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	if c.confirm {
		req.Header.Set(middleware.ConfirmHeader, "true")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type envelope[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data"`
	Total   int          `json:"total"`
	Error   models.Error `json:"error"`
}

func TestListAndSearchProducts(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, call{method: http.MethodGet, path: "/api/v1/products"})
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[envelope[[]models.Product]](t, w)
	assert.Equal(t, 2, all.Total)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/products?q=cotton"})
	found := decode[envelope[[]models.Product]](t, w)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "OCT-001", found.Data[0].SKU)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/products?category=electronics"})
	assert.Equal(t, 1, decode[envelope[[]models.Product]](t, w).Total)
}

func TestCreateProductRequiresActor(t *testing.T) {
	env := newTestEnv(t)
	req := models.CreateProductRequest{Name: "Smart Watch", Description: "Fitness tracking", Price: 149.5, SKU: "SW-001"}

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/products", body: req})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Len(t, env.store.Products(), 2)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/products", body: req, auth: true})
	require.Equal(t, http.StatusCreated, w.Code)
	product := decode[envelope[models.Product]](t, w).Data
	assert.Equal(t, "smart-watch", product.Slug)

	assert.Eventually(t, func() bool {
		_, ok := env.registry.Page(product.ID)
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestValidationAndNotFoundMapping(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/products", auth: true,
		body: models.CreateProductRequest{Description: "x", Price: 1, SKU: "X-1"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[envelope[any]](t, w)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "name", body.Error.Field)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/products", auth: true,
		body: models.CreateProductRequest{Name: "Dup", Description: "x", Price: 1, SKU: "WBH-001"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sku", decode[envelope[any]](t, w).Error.Field)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/products/missing"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[envelope[any]](t, w).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	id := env.store.Orders()[0].ID

	w := env.do(t, call{method: http.MethodDelete, path: "/api/v1/orders/" + id})
	require.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", decode[envelope[any]](t, w).Error.Code)
	assert.Len(t, env.store.Orders(), 1)

	w = env.do(t, call{method: http.MethodDelete, path: "/api/v1/orders/" + id, confirm: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.Orders())
}

func TestCreateOrderComputesTotals(t *testing.T) {
	env := newTestEnv(t)
	customer := env.store.Customers()[0]
	tshirt := env.store.Products()[1]

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/orders", body: models.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []models.CreateOrderItemRequest{{ProductID: tshirt.ID, Quantity: 2}},
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[envelope[models.Order]](t, w).Data
	assert.Equal(t, "#1002", order.OrderNumber)
	assert.InDelta(t, 59.98, order.Subtotal, 0.001)
	assert.InDelta(t, 6, order.Tax, 0.001)
	assert.InDelta(t, 9.99, order.Shipping, 0.001)
	assert.InDelta(t, 75.97, order.Total, 0.001)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/customers/" + customer.ID})
	updated := decode[envelope[models.Customer]](t, w).Data
	assert.Equal(t, customer.OrdersCount+1, updated.OrdersCount)
}

func TestExhaustedDiscountIsRejected(t *testing.T) {
	env := newTestEnv(t)
	limit := 1
	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/discounts", body: models.CreateDiscountRequest{
		Code: "ONCE", Type: models.DiscountTypePercentage, Value: 10, UsageLimit: &limit,
	}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/discounts/redeem", body: models.RedeemDiscountRequest{Code: "ONCE"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[envelope[models.Discount]](t, w).Data.UsageCount)

	code := "ONCE"
	w = env.do(t, call{method: http.MethodPost, path: "/api/v1/orders", body: models.CreateOrderRequest{
		CustomerID:   env.store.Customers()[0].ID,
		Items:        []models.CreateOrderItemRequest{{ProductID: env.store.Products()[0].ID, Quantity: 1}},
		DiscountCode: &code,
	}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[envelope[any]](t, w)
	assert.Equal(t, "DISCOUNT_REJECTED", body.Error.Code)
	assert.Len(t, env.store.Orders(), 1, "the rejected order was not created")
}

func TestAnalyticsAndSearch(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, call{method: http.MethodGet, path: "/api/v1/analytics"})
	require.Equal(t, http.StatusOK, w.Code)
	a := decode[envelope[models.Analytics]](t, w).Data
	assert.InDelta(t, 229.98, a.TotalRevenue, 0.001)
	assert.Equal(t, 1, a.TotalCustomers)

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/search?q=john"})
	results := decode[envelope[models.SearchResults]](t, w).Data
	assert.Len(t, results.Customers, 1)
	assert.Len(t, results.Orders, 1)
	assert.Empty(t, results.Products)
}

func TestGenerateSitePages(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/site-pages/generate"})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[envelope[pages.GenerateResult]](t, w).Data
	assert.Equal(t, 9, result.Published)
	assert.Len(t, env.registry.Pages(), 9)
}

func TestCollectionProducts(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, call{method: http.MethodPost, path: "/api/v1/collections", body: models.CreateCollectionRequest{
		Name:       "Audio",
		Conditions: []models.CollectionCondition{{Field: models.CollectionFieldTag, Relation: models.RelationEquals, Value: "audio"}},
	}})
	require.Equal(t, http.StatusCreated, w.Code)
	col := decode[envelope[models.Collection]](t, w).Data

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/collections/" + col.ID + "/products"})
	require.Equal(t, http.StatusOK, w.Code)
	products := decode[envelope[[]models.Product]](t, w)
	require.Equal(t, 1, products.Total)
	assert.Equal(t, "WBH-001", products.Data[0].SKU)
}

func TestSettingsRedactSecrets(t *testing.T) {
	env := newTestEnv(t)
	enable, pk, sk := true, "pk_test_123456", "sk_test_abcdef"
	w := env.do(t, call{method: http.MethodPut, path: "/api/v1/settings/payment", body: models.UpdatePaymentSettingsRequest{
		EnableStripe: &enable, StripePublishableKey: &pk, StripeSecretKey: &sk,
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "****cdef", decode[envelope[models.PaymentSettings]](t, w).Data.StripeSecretKey)
	assert.Equal(t, "sk_test_abcdef", env.store.PaymentSettings().StripeSecretKey)
}

func TestReports(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, call{method: http.MethodGet, path: "/api/v1/reports/sales.xlsx"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reports.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales.xlsx")

	id := env.store.Orders()[0].ID
	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/orders/" + id + "/invoice.pdf"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = env.do(t, call{method: http.MethodGet, path: "/api/v1/orders/missing/invoice.pdf"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
