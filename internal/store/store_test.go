package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

var testActor = models.Actor{ID: "00000000-0000-0000-0000-000000000001", Email: "admin@example.com"}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	base := []Option{
		WithClock(clock.now),
		WithIDGenerator(sequentialIDs()),
		WithIdentity(StaticIdentity(testActor)),
		WithConfirmer(AlwaysConfirm),
	}
	return New(append(base, opts...)...), clock
}

func headphones() models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:        "Wireless Bluetooth Headphones",
		Description: "Premium wireless headphones with noise cancellation",
		Price:       199.99,
		Cost:        89.99,
		SKU:         "WBH-001",
		Quantity:    50,
		Category:    "Electronics",
	}
}

func createProduct(t *testing.T, s *Store, req models.CreateProductRequest) models.Product {
	t.Helper()
	cmd := &CreateProductCommand{Input: req}
	require.NoError(t, s.Execute(context.Background(), cmd))
	return cmd.Created
}

func createCustomer(t *testing.T, s *Store) models.Customer {
	t.Helper()
	cmd := &CreateCustomerCommand{Input: models.CreateCustomerRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Tags:      []string{"vip"},
	}}
	require.NoError(t, s.Execute(context.Background(), cmd))
	return cmd.Created
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Wireless Bluetooth Headphones", "wireless-bluetooth-headphones"},
		{"punctuation", "Men's T-Shirt (Blue)!", "mens-t-shirt-blue"},
		{"whitespace runs", "  About   Us  ", "about-us"},
		{"hyphen runs", "a -- b", "a-b"},
		{"underscore kept", "snake_case name", "snake_case-name"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "slugify must be idempotent")
			assert.NotContains(t, got, " ")
			assert.NotContains(t, got, "--")
		})
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("derives slug and timestamps", func(t *testing.T) {
		s, clock := newTestStore(t)
		products, err := s.CreateProduct(context.Background(), headphones())
		require.NoError(t, err)
		require.Len(t, products, 1)

		p := products[0]
		assert.Equal(t, "wireless-bluetooth-headphones", p.Slug)
		assert.Equal(t, clock.t, p.CreatedAt)
		assert.Equal(t, clock.t, p.UpdatedAt)
		assert.Equal(t, models.ProductStatusActive, p.Status)
		assert.Equal(t, models.WeightUnitKg, p.WeightUnit)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("appends in insertion order with unique slugs", func(t *testing.T) {
		s, _ := newTestStore(t)
		first := createProduct(t, s, headphones())
		second := headphones()
		second.SKU = "WBH-002"
		createProduct(t, s, second)

		products := s.Products()
		require.Len(t, products, 2)
		assert.Equal(t, first.ID, products[0].ID)
		assert.Equal(t, "wireless-bluetooth-headphones-1", products[1].Slug)
	})

	t.Run("requires an actor", func(t *testing.T) {
		s, _ := newTestStore(t, WithIdentity(IdentityFunc(func(context.Context) (models.Actor, bool) {
			return models.Actor{}, false
		})))
		_, err := s.CreateProduct(context.Background(), headphones())
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Empty(t, s.Products())
	})

	t.Run("missing sku is a validation error", func(t *testing.T) {
		s, _ := newTestStore(t)
		req := headphones()
		req.SKU = ""
		_, err := s.CreateProduct(context.Background(), req)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "sku", ve.Field)
		assert.Empty(t, s.Products())
	})

	t.Run("non-positive price is a validation error", func(t *testing.T) {
		s, _ := newTestStore(t)
		req := headphones()
		req.Price = 0
		_, err := s.CreateProduct(context.Background(), req)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "price", ve.Field)
	})

	t.Run("duplicate sku is rejected", func(t *testing.T) {
		s, _ := newTestStore(t)
		createProduct(t, s, headphones())
		_, err := s.CreateProduct(context.Background(), headphones())

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "sku", ve.Field)
		assert.Len(t, s.Products(), 1)
	})
}

type mockMedia struct {
	mock.Mock
}

func (m *mockMedia) AddMedia(ctx context.Context, media models.Media) error {
	args := m.Called(ctx, media)
	return args.Error(0)
}

func TestCreateProductRegistersImage(t *testing.T) {
	media := new(mockMedia)
	media.On("AddMedia", mock.Anything, mock.MatchedBy(func(m models.Media) bool {
		return m.URL == "https://cdn.example.com/headphones.jpg" && m.Type == models.MediaTypeImage
	})).Return(nil).Once()

	s, _ := newTestStore(t, WithMediaLibrary(media))
	req := headphones()
	req.Image = &models.ImageUpload{URL: "https://cdn.example.com/headphones.jpg"}
	p := createProduct(t, s, req)

	assert.Equal(t, []string{"https://cdn.example.com/headphones.jpg"}, p.Images)
	media.AssertExpectations(t)
}

func TestUpdateProduct(t *testing.T) {
	s, clock := newTestStore(t)
	p := createProduct(t, s, headphones())
	clock.advance(time.Minute)

	name := "Studio Headphones"
	price := 149.5
	_, err := s.UpdateProduct(context.Background(), p.ID, models.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)

	got, err := s.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio Headphones", got.Name)
	assert.Equal(t, "studio-headphones", got.Slug)
	assert.Equal(t, 149.5, got.Price)
	assert.Equal(t, p.SKU, got.SKU)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)
	assert.Equal(t, clock.t, got.UpdatedAt)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	name := "x"
	_, err := s.UpdateProduct(context.Background(), "missing", models.UpdateProductRequest{Name: &name})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Entity)
	assert.Equal(t, "missing", nf.ID)
}

func TestDelete(t *testing.T) {
	t.Run("removes exactly one record", func(t *testing.T) {
		s, _ := newTestStore(t)
		a := createProduct(t, s, headphones())
		req := headphones()
		req.SKU = "WBH-002"
		b := createProduct(t, s, req)
		before := s.Products()

		products, err := s.DeleteProduct(context.Background(), a.ID)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, b.ID, products[0].ID)
		assert.Equal(t, before[1], products[0])
	})

	t.Run("unknown id leaves the collection unchanged", func(t *testing.T) {
		s, _ := newTestStore(t)
		createProduct(t, s, headphones())
		before := s.Products()

		_, err := s.DeleteProduct(context.Background(), "missing")
		assert.True(t, IsNotFound(err))
		assert.Equal(t, before, s.Products())
	})

	t.Run("declined confirmation applies nothing", func(t *testing.T) {
		s, _ := newTestStore(t, WithConfirmer(NeverConfirm))
		p := createProduct(t, s, headphones())

		_, err := s.DeleteProduct(context.Background(), p.ID)
		assert.ErrorIs(t, err, ErrNotConfirmed)
		assert.Len(t, s.Products(), 1)
	})

	t.Run("context confirmation", func(t *testing.T) {
		s, _ := newTestStore(t, WithConfirmer(ContextConfirmer{}))
		p := createProduct(t, s, headphones())

		_, err := s.DeleteProduct(context.Background(), p.ID)
		assert.ErrorIs(t, err, ErrNotConfirmed)

		_, err = s.DeleteProduct(WithConfirmation(context.Background(), true), p.ID)
		require.NoError(t, err)
		assert.Empty(t, s.Products())
	})

	t.Run("deleting a customer keeps order snapshots", func(t *testing.T) {
		s, _ := newTestStore(t)
		p := createProduct(t, s, headphones())
		c := createCustomer(t, s)
		_, err := s.CreateOrder(context.Background(), models.CreateOrderRequest{
			CustomerID: c.ID,
			Items:      []models.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		_, err = s.DeleteCustomer(context.Background(), c.ID)
		require.NoError(t, err)
		_, err = s.DeleteProduct(context.Background(), p.ID)
		require.NoError(t, err)

		orders := s.Orders()
		require.Len(t, orders, 1)
		assert.Equal(t, "john.doe@example.com", orders[0].Customer.Email)
		assert.Equal(t, "WBH-001", orders[0].Items[0].SKU)
	})
}

func TestExecuteIsAllOrNothing(t *testing.T) {
	s, _ := newTestStore(t)
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	bad := headphones()
	bad.Name = ""
	err := s.Execute(context.Background(),
		&CreateProductCommand{Input: headphones()},
		&CreateProductCommand{Input: bad},
	)
	require.Error(t, err)
	assert.Empty(t, s.Products())
	assert.Empty(t, changes)
	assert.Equal(t, uint64(0), s.Version())
}

func TestBatchFiresOneNotification(t *testing.T) {
	s, _ := newTestStore(t)
	c := createCustomer(t, s)

	var changes []Change
	s.Subscribe(func(ch Change) { changes = append(changes, ch) })

	first, last := "Jane", "Smith"
	lastAgain := "Smythe"
	err := s.Execute(context.Background(),
		&UpdateCustomerCommand{ID: c.ID, Patch: models.UpdateCustomerRequest{FirstName: &first, LastName: &last}},
		&UpdateCustomerCommand{ID: c.ID, Patch: models.UpdateCustomerRequest{LastName: &lastAgain}},
	)
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, []string{models.SliceCustomers}, changes[0].Slices)
	assert.Len(t, changes[0].Events, 2)

	got, err := s.Customer(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Smythe", got.LastName)
	assert.Equal(t, "john.doe@example.com", got.Email)
}

func TestSnapshotsAreNotAliased(t *testing.T) {
	s, _ := newTestStore(t)
	createProduct(t, s, headphones())

	products := s.Products()
	products[0].Name = "mutated"
	products[0].Tags = append(products[0].Tags, "x")

	assert.Equal(t, "Wireless Bluetooth Headphones", s.Products()[0].Name)
	assert.Empty(t, s.Products()[0].Tags)
}

func TestVariants(t *testing.T) {
	s, _ := newTestStore(t)
	p := createProduct(t, s, models.CreateProductRequest{
		Name: "Organic Cotton T-Shirt", Description: "Soft tee", Price: 29.99, SKU: "OCT-001",
	})

	cmd := &CreateVariantCommand{ProductID: p.ID, Input: models.CreateProductVariantRequest{
		Title: "Small / White", Price: 29.99, SKU: "OCT-001-S-W",
		Options: map[string]string{"Size": "Small", "Color": "White"},
	}}
	require.NoError(t, s.Execute(context.Background(), cmd))
	assert.Equal(t, p.ID, cmd.Created.ProductID)

	_, err := s.CreateVariant(context.Background(), p.ID, models.CreateProductVariantRequest{
		Title: "dup", Price: 1, SKU: "OCT-001",
	})
	assert.True(t, IsValidation(err), "variant sku must be unique across products and variants")

	qty := 7
	_, err = s.UpdateVariant(context.Background(), p.ID, cmd.Created.ID, models.UpdateProductVariantRequest{Quantity: &qty})
	require.NoError(t, err)
	got, err := s.Product(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, 7, got.Variants[0].Quantity)
	assert.Equal(t, "White", got.Variants[0].Options["Color"])

	_, err = s.DeleteVariant(context.Background(), p.ID, "missing")
	assert.True(t, IsNotFound(err))

	_, err = s.DeleteVariant(context.Background(), p.ID, cmd.Created.ID)
	require.NoError(t, err)
	got, _ = s.Product(p.ID)
	assert.Empty(t, got.Variants)
}

func TestCreateOrder(t *testing.T) {
	s, _ := newTestStore(t)
	tee := createProduct(t, s, models.CreateProductRequest{
		Name: "Organic Cotton T-Shirt", Description: "Soft tee", Price: 25, SKU: "OCT-001",
	})
	c := createCustomer(t, s)

	cmd := &CreateOrderCommand{Input: models.CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []models.CreateOrderItemRequest{{ProductID: tee.ID, Quantity: 2}},
	}}
	require.NoError(t, s.Execute(context.Background(), cmd))
	o := cmd.Created

	assert.Equal(t, "#1001", o.OrderNumber)
	assert.Equal(t, 50.0, o.Subtotal)
	assert.Equal(t, 5.0, o.Tax)
	assert.Equal(t, 9.99, o.Shipping)
	assert.Equal(t, 0.0, o.Discount)
	assert.Equal(t, 64.99, o.Total)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	assert.Equal(t, "Organic Cotton T-Shirt", o.Items[0].Name)
	assert.Equal(t, 50.0, o.Items[0].Total)

	cust, err := s.Customer(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 64.99, cust.TotalSpent)
	assert.Equal(t, 1, cust.OrdersCount)

	second := &CreateOrderCommand{Input: models.CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []models.CreateOrderItemRequest{{ProductID: tee.ID, Quantity: 4}},
	}}
	require.NoError(t, s.Execute(context.Background(), second))
	assert.Equal(t, "#1002", second.Created.OrderNumber)
	assert.Equal(t, 0.0, second.Created.Shipping, "free shipping above the threshold")
	assert.Equal(t, 110.0, second.Created.Total)
}

func TestCreateOrderTotalsAreFixed(t *testing.T) {
	s, _ := newTestStore(t)
	p := createProduct(t, s, headphones())
	c := createCustomer(t, s)
	orders, err := s.CreateOrder(context.Background(), models.CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []models.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	before := orders[0]

	rate := 25.0
	_, err = s.UpdateStoreSettings(context.Background(), models.UpdateStoreSettingsRequest{TaxRate: &rate})
	require.NoError(t, err)
	newPrice := 10.0
	_, err = s.UpdateProduct(context.Background(), p.ID, models.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	newName := "Jack"
	_, err = s.UpdateCustomer(context.Background(), c.ID, models.UpdateCustomerRequest{FirstName: &newName})
	require.NoError(t, err)

	after, err := s.Order(before.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
	assert.Equal(t, before.Tax, after.Tax)
	assert.Equal(t, 199.99, after.Items[0].Price)
	assert.Equal(t, "John", after.Customer.FirstName)
	assert.InDelta(t, after.Subtotal+after.Tax+after.Shipping-after.Discount, after.Total, 0.001)
}

func TestCreateOrderWithDiscount(t *testing.T) {
	s, _ := newTestStore(t)
	p := createProduct(t, s, models.CreateProductRequest{
		Name: "Mug", Description: "Ceramic", Price: 50, SKU: "MUG-1",
	})
	c := createCustomer(t, s)
	limit := 1
	_, err := s.CreateDiscount(context.Background(), models.CreateDiscountRequest{
		Code: "SAVE10", Type: models.DiscountTypePercentage, Value: 10, UsageLimit: &limit,
	})
	require.NoError(t, err)

	code := "save10"
	cmd := &CreateOrderCommand{Input: models.CreateOrderRequest{
		CustomerID:   c.ID,
		Items:        []models.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
		DiscountCode: &code,
	}}
	require.NoError(t, s.Execute(context.Background(), cmd))
	assert.Equal(t, 5.0, cmd.Created.Discount)
	assert.Equal(t, 59.99, cmd.Created.Total)
	require.NotNil(t, cmd.Created.DiscountCode)
	assert.Equal(t, "SAVE10", *cmd.Created.DiscountCode)
	assert.Equal(t, 1, s.Discounts()[0].UsageCount)

	_, err = s.CreateOrder(context.Background(), cmd.Input)
	var rejected *DiscountRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Len(t, s.Orders(), 1, "a rejected discount blocks the whole order")
	cust, _ := s.Customer(c.ID)
	assert.Equal(t, 1, cust.OrdersCount)
}

func TestOrderStatusMachine(t *testing.T) {
	s, _ := newTestStore(t)
	p := createProduct(t, s, headphones())
	c := createCustomer(t, s)
	orders, err := s.CreateOrder(context.Background(), models.CreateOrderRequest{
		CustomerID: c.ID,
		Items:      []models.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	id := orders[0].ID

	shipped := models.OrderStatusShipped
	_, err = s.UpdateOrder(context.Background(), id, models.UpdateOrderRequest{Status: &shipped})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	for _, next := range []models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusShipped, models.OrderStatusDelivered} {
		status := next
		_, err = s.UpdateOrder(context.Background(), id, models.UpdateOrderRequest{Status: &status})
		require.NoError(t, err, "transition to %s", next)
	}
	o, _ := s.Order(id)
	assert.Equal(t, models.OrderStatusDelivered, o.Status)
	assert.Equal(t, models.FulfillmentStatusFulfilled, o.FulfillmentStatus)
}

func TestOrderNumberFormat(t *testing.T) {
	tests := []struct {
		format   string
		existing []string
		want     string
	}{
		{"#1000", nil, "#1001"},
		{"#1000", []string{"#1001", "#1007", "#1003"}, "#1008"},
		{"ORD-0001", []string{"ORD-0009"}, "ORD-0010"},
		{"#1000", []string{"INV-5000"}, "#1001"},
		{"SO-", nil, "SO-1"},
	}
	for _, tt := range tests {
		t.Run(tt.format+strings.Join(tt.existing, ","), func(t *testing.T) {
			orders := make([]models.Order, len(tt.existing))
			for i, n := range tt.existing {
				orders[i] = models.Order{OrderNumber: n}
			}
			assert.Equal(t, tt.want, nextOrderNumber(tt.format, orders))
		})
	}
}

func TestDiscountUsageLimit(t *testing.T) {
	s, _ := newTestStore(t)
	limit := 5
	discounts, err := s.CreateDiscount(context.Background(), models.CreateDiscountRequest{
		Code: "WELCOME", Type: models.DiscountTypeFixedAmount, Value: 5, UsageLimit: &limit,
	})
	require.NoError(t, err)
	id := discounts[0].ID

	for i := 0; i < 5; i++ {
		_, err := s.RedeemDiscount(context.Background(), "welcome")
		require.NoError(t, err)
	}
	d, _ := s.Discount(id)
	assert.Equal(t, 5, d.UsageCount)

	_, err = s.RedeemDiscount(context.Background(), "WELCOME")
	var rejected *DiscountRejectedError
	require.ErrorAs(t, err, &rejected)
	d, _ = s.Discount(id)
	assert.Equal(t, 5, d.UsageCount)

	over := 6
	_, err = s.UpdateDiscount(context.Background(), id, models.UpdateDiscountRequest{UsageCount: &over})
	assert.True(t, IsValidation(err))

	lower := 3
	_, err = s.UpdateDiscount(context.Background(), id, models.UpdateDiscountRequest{UsageLimit: &lower})
	assert.True(t, IsValidation(err), "lowering the limit below usage must be rejected")
	d, _ = s.Discount(id)
	assert.LessOrEqual(t, d.UsageCount, *d.UsageLimit)
}

func TestDiscountCodesAreUnique(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.CreateDiscount(context.Background(), models.CreateDiscountRequest{Code: "SUMMER", Value: 10})
	require.NoError(t, err)
	_, err = s.CreateDiscount(context.Background(), models.CreateDiscountRequest{Code: "summer", Value: 5})
	assert.True(t, IsValidation(err))

	_, err = s.CreateDiscount(context.Background(), models.CreateDiscountRequest{Code: "FREE"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "value", ve.Field)
}

func TestPages(t *testing.T) {
	s, _ := newTestStore(t)
	pages, err := s.CreatePage(context.Background(), models.CreatePageRequest{Name: "About Us", Template: models.PageTemplateAbout})
	require.NoError(t, err)
	assert.Equal(t, "about-us", pages[0].Slug)

	pages, err = s.CreatePage(context.Background(), models.CreatePageRequest{Name: "Contact Us", Slug: "contact"})
	require.NoError(t, err)
	assert.Equal(t, "contact", pages[1].Slug)
	assert.Equal(t, models.PageTemplateDefault, pages[1].Template)

	pages, err = s.CreatePage(context.Background(), models.CreatePageRequest{Name: "About us"})
	require.NoError(t, err)
	assert.Equal(t, "about-us-1", pages[2].Slug)

	_, err = s.CreatePage(context.Background(), models.CreatePageRequest{})
	assert.True(t, IsValidation(err))
}

func TestCategories(t *testing.T) {
	s, _ := newTestStore(t)
	cmd := &CreateCategoryCommand{Input: models.CreateCategoryRequest{Name: "Electronics"}}
	require.NoError(t, s.Execute(context.Background(), cmd))
	assert.Equal(t, "electronics", cmd.Created.Slug)
	assert.True(t, cmd.Created.IsVisible)

	child := &CreateCategoryCommand{Input: models.CreateCategoryRequest{Name: "Audio", ParentID: &cmd.Created.ID}}
	require.NoError(t, s.Execute(context.Background(), child))

	_, err := s.UpdateCategory(context.Background(), cmd.Created.ID, models.UpdateCategoryRequest{ParentID: &child.Created.ID})
	assert.True(t, IsValidation(err), "cycles are rejected")

	missing := "nope"
	_, err = s.CreateCategory(context.Background(), models.CreateCategoryRequest{Name: "Orphan", ParentID: &missing})
	assert.True(t, IsValidation(err))
}

func TestSettingsSingletons(t *testing.T) {
	s, _ := newTestStore(t)
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	name := "Acme Outfitters"
	settings, err := s.UpdateStoreSettings(context.Background(), models.UpdateStoreSettingsRequest{StoreName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Outfitters", settings.StoreName)
	assert.Equal(t, "USD", settings.Currency)

	enable := true
	_, err = s.UpdatePaymentSettings(context.Background(), models.UpdatePaymentSettingsRequest{EnableStripe: &enable})
	assert.True(t, IsValidation(err))

	require.Len(t, changes, 1)
	assert.True(t, changes[0].Touches(models.SliceStoreSettings))
}

func TestLoadDoesNotNotify(t *testing.T) {
	s, _ := newTestStore(t)
	notified := false
	s.Subscribe(func(Change) { notified = true })

	s.Load(models.Snapshot{
		Products: []models.Product{{ID: "p1", Name: "Loaded", Slug: "loaded", SKU: "L-1"}},
	})

	assert.False(t, notified)
	assert.Len(t, s.Products(), 1)
	assert.Equal(t, "#1000", s.StoreSettings().OrderIDFormat)
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Field
}

func TestBlankRequiredFieldsAreRejected(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	blank := "   "

	req := headphones()
	req.Name = blank
	_, err := s.CreateProduct(ctx, req)
	assert.Equal(t, "name", validationField(t, err))

	req = headphones()
	req.Description = "\t\n"
	_, err = s.CreateProduct(ctx, req)
	assert.Equal(t, "description", validationField(t, err))

	req = headphones()
	req.SKU = blank
	_, err = s.CreateProduct(ctx, req)
	assert.Equal(t, "sku", validationField(t, err))
	assert.Empty(t, s.Products())

	p := createProduct(t, s, headphones())
	_, err = s.UpdateProduct(ctx, p.ID, models.UpdateProductRequest{Name: &blank})
	assert.Equal(t, "name", validationField(t, err))
	_, err = s.CreateVariant(ctx, p.ID, models.CreateProductVariantRequest{Title: blank, Price: 1, SKU: "V-1"})
	assert.Equal(t, "title", validationField(t, err))

	_, err = s.CreateCustomer(ctx, models.CreateCustomerRequest{FirstName: blank, LastName: "Doe", Email: "john@example.com"})
	assert.Equal(t, "firstName", validationField(t, err))
	c := createCustomer(t, s)
	_, err = s.UpdateCustomer(ctx, c.ID, models.UpdateCustomerRequest{LastName: &blank})
	assert.Equal(t, "lastName", validationField(t, err))

	_, err = s.CreateDiscount(ctx, models.CreateDiscountRequest{Code: blank, Type: models.DiscountTypePercentage, Value: 10})
	assert.Equal(t, "code", validationField(t, err))

	_, err = s.CreatePage(ctx, models.CreatePageRequest{Name: blank})
	assert.Equal(t, "name", validationField(t, err))

	_, err = s.CreateCategory(ctx, models.CreateCategoryRequest{Name: blank})
	assert.Equal(t, "name", validationField(t, err))
	cats, err := s.CreateCategory(ctx, models.CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	_, err = s.UpdateCategory(ctx, cats[0].ID, models.UpdateCategoryRequest{Name: &blank})
	assert.Equal(t, "name", validationField(t, err))

	_, err = s.CreateCollection(ctx, models.CreateCollectionRequest{Name: blank})
	assert.Equal(t, "name", validationField(t, err))

	assert.Empty(t, s.Pages())
	assert.Empty(t, s.Collections())
	assert.Empty(t, s.Discounts())
	got, _ := s.Product(p.ID)
	assert.Equal(t, "Wireless Bluetooth Headphones", got.Name)
}

func TestSKUCaseChangeOnSameItem(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	p := createProduct(t, s, headphones())

	lower := "wbh-001"
	products, err := s.UpdateProduct(ctx, p.ID, models.UpdateProductRequest{SKU: &lower})
	require.NoError(t, err)
	assert.Equal(t, "wbh-001", products[0].SKU)

	products, err = s.CreateVariant(ctx, p.ID, models.CreateProductVariantRequest{Title: "Black", Price: 199.99, SKU: "WBH-001-BLK"})
	require.NoError(t, err)
	variant := products[0].Variants[0]
	vsku := "wbh-001-blk"
	_, err = s.UpdateVariant(ctx, p.ID, variant.ID, models.UpdateProductVariantRequest{SKU: &vsku})
	require.NoError(t, err)

	// another item's sku still collides regardless of case
	taken := "WBH-001"
	_, err = s.UpdateVariant(ctx, p.ID, variant.ID, models.UpdateProductVariantRequest{SKU: &taken})
	assert.Equal(t, "sku", validationField(t, err))
}

func TestPagesCannotClaimSiteRoutes(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	pages, err := s.CreatePage(ctx, models.CreatePageRequest{Name: "Shop"})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", pages[0].Slug)

	pages, err = s.CreatePage(ctx, models.CreatePageRequest{Name: "Our cart policy", Slug: "cart"})
	require.NoError(t, err)
	assert.Equal(t, "cart-1", pages[1].Slug)

	slug := "checkout"
	pages, err = s.UpdatePage(ctx, pages[0].ID, models.UpdatePageRequest{Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "checkout-1", pages[0].Slug)

	for _, reserved := range ReservedPageSlugs {
		assert.True(t, IsReservedPageSlug(reserved))
	}
	assert.False(t, IsReservedPageSlug("shop-1"))
}
