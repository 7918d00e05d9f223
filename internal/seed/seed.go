// Package seed builds the initial store state for a deployment profile.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-service/internal/models"
)

// Profile selects which fixtures are loaded at start-up
type Profile string

const (
	ProfileDemo  Profile = "demo"
	ProfileEmpty Profile = "empty"
)

// ParseProfile accepts "demo" or "empty"; blank means demo
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProfileDemo:
		return ProfileDemo, nil
	case ProfileEmpty:
		return ProfileEmpty, nil
	default:
		return "", fmt.Errorf("unknown seed profile %q (want demo or empty)", s)
	}
}

// Snapshot returns the fixtures of a profile. Both profiles carry default settings.
func Snapshot(profile Profile) models.Snapshot {
	base := models.Snapshot{
		Products:        []models.Product{},
		Orders:          []models.Order{},
		Customers:       []models.Customer{},
		Categories:      []models.Category{},
		Collections:     []models.Collection{},
		Discounts:       []models.Discount{},
		Pages:           []models.Page{},
		StoreSettings:   models.DefaultStoreSettings(),
		PaymentSettings: models.DefaultPaymentSettings(),
	}
	if profile != ProfileDemo {
		return base
	}
	customers := demoCustomers()
	base.Products = demoProducts()
	base.Customers = customers
	base.Orders = demoOrders(customers[0])
	base.Categories = demoCategories()
	base.Pages = demoPages()
	return base
}

// fixtureID derives a stable UUID so demo entities keep their ids across restarts
func fixtureID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront-service/seed/"+kind+"/"+key)).String()
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func demoProducts() []models.Product {
	headphones := fixtureID("product", "1")
	tshirt := fixtureID("product", "2")
	return []models.Product{
		{
			ID:               headphones,
			Name:             "Wireless Bluetooth Headphones",
			Description:      "Premium quality wireless headphones with noise cancellation and 30-hour battery life.",
			ShortDescription: "Premium wireless headphones with noise cancellation.",
			Price:            199.99,
			CompareAtPrice:   num(249.99),
			Cost:             120,
			SKU:              "WBH-001",
			Barcode:          str("123456789012"),
			TrackQuantity:    true,
			Quantity:         45,
			Weight:           0.3,
			WeightUnit:       models.WeightUnitKg,
			Category:         "Electronics",
			Tags:             []string{"headphones", "wireless", "bluetooth", "audio"},
			Status:           models.ProductStatusActive,
			Vendor:           "AudioTech",
			ProductType:      "Headphones",
			Images:           []string{"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
			Variants:         []models.ProductVariant{},
			SeoTitle:         str("Best Wireless Bluetooth Headphones - AudioTech"),
			SeoDescription:   str("Shop premium wireless headphones with superior sound quality and long battery life."),
			CreatedAt:        ts("2024-01-15T10:00:00Z"),
			UpdatedAt:        ts("2024-01-20T15:30:00Z"),
			Slug:             "wireless-bluetooth-headphones",
		},
		{
			ID:               tshirt,
			Name:             "Organic Cotton T-Shirt",
			Description:      "Comfortable organic cotton t-shirt made from sustainably sourced materials.",
			ShortDescription: "Comfortable organic cotton t-shirt.",
			Price:            29.99,
			CompareAtPrice:   num(39.99),
			Cost:             15,
			SKU:              "OCT-001",
			Barcode:          str("123456789013"),
			TrackQuantity:    true,
			Quantity:         120,
			Weight:           0.15,
			WeightUnit:       models.WeightUnitKg,
			Category:         "Clothing",
			Tags:             []string{"t-shirt", "organic", "cotton", "sustainable"},
			Status:           models.ProductStatusActive,
			Vendor:           "EcoWear",
			ProductType:      "T-Shirt",
			Images:           []string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500"},
			Variants: []models.ProductVariant{
				{
					ID: fixtureID("variant", "2-1"), ProductID: tshirt, Title: "Small / Black",
					Price: 29.99, Cost: 15, SKU: "OCT-001-S-BLK", Quantity: 30, Weight: 0.15,
					Options: map[string]string{"size": "Small", "color": "Black"},
				},
				{
					ID: fixtureID("variant", "2-2"), ProductID: tshirt, Title: "Medium / White",
					Price: 29.99, Cost: 15, SKU: "OCT-001-M-WHT", Quantity: 40, Weight: 0.15,
					Options: map[string]string{"size": "Medium", "color": "White"},
				},
			},
			CreatedAt: ts("2024-01-10T08:00:00Z"),
			UpdatedAt: ts("2024-01-18T12:00:00Z"),
			Slug:      "organic-cotton-t-shirt",
		},
	}
}

func demoCustomers() []models.Customer {
	return []models.Customer{{
		ID:               fixtureID("customer", "1"),
		FirstName:        "John",
		LastName:         "Doe",
		Email:            "john.doe@example.com",
		Phone:            str("+1234567890"),
		AcceptsMarketing: true,
		TotalSpent:       229.98,
		OrdersCount:      1,
		Status:           models.CustomerStatusActive,
		Addresses: []models.Address{{
			ID:        fixtureID("address", "1"),
			FirstName: "John",
			LastName:  "Doe",
			Address1:  "123 Main St",
			City:      "New York",
			Province:  "NY",
			Country:   "United States",
			Zip:       "10001",
			Phone:     str("+1234567890"),
			IsDefault: true,
		}},
		Tags:      []string{"vip", "repeat-customer"},
		CreatedAt: ts("2024-01-01T00:00:00Z"),
		UpdatedAt: ts("2024-01-20T10:00:00Z"),
	}}
}

func demoOrders(customer models.Customer) []models.Order {
	address := customer.Addresses[0]
	return []models.Order{{
		ID:          fixtureID("order", "1"),
		OrderNumber: "#1001",
		Customer:    customer.Clone(),
		Items: []models.OrderItem{{
			ID:        fixtureID("order-item", "1"),
			ProductID: fixtureID("product", "1"),
			Name:      "Wireless Bluetooth Headphones",
			SKU:       "WBH-001",
			Quantity:  1,
			Price:     199.99,
			Total:     199.99,
			Image:     str("https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"),
		}},
		Subtotal:          199.99,
		Tax:               20,
		Shipping:          9.99,
		Discount:          0,
		Total:             229.98,
		Status:            models.OrderStatusConfirmed,
		PaymentStatus:     models.PaymentStatusPaid,
		FulfillmentStatus: models.FulfillmentStatusUnfulfilled,
		ShippingAddress:   address,
		BillingAddress:    address,
		PaymentMethod:     "Credit Card",
		CreatedAt:         ts("2024-01-15T14:30:00Z"),
		UpdatedAt:         ts("2024-01-15T14:30:00Z"),
	}}
}

func demoCategories() []models.Category {
	return []models.Category{
		{ID: fixtureID("category", "1"), Name: "Electronics", Slug: "electronics", Description: "Electronic devices and accessories", IsVisible: true},
		{ID: fixtureID("category", "2"), Name: "Clothing", Slug: "clothing", Description: "Fashion and apparel", IsVisible: true},
	}
}

func demoPages() []models.Page {
	return []models.Page{
		{
			ID:              fixtureID("page", "1"),
			Name:            "About Us",
			Slug:            "about-us",
			Content:         "<h1>About Our Store</h1><p>We are a leading e-commerce store...</p>",
			MetaTitle:       str("About Us - Learn More About Our Story"),
			MetaDescription: str("Discover our story, mission, and values."),
			IsPublished:     true,
			Template:        models.PageTemplateAbout,
			CreatedAt:       ts("2024-01-01T00:00:00Z"),
			UpdatedAt:       ts("2024-01-01T00:00:00Z"),
		},
		{
			ID:              fixtureID("page", "2"),
			Name:            "Contact Us",
			Slug:            "contact",
			Content:         "<h1>Contact Us</h1><p>Get in touch with our team...</p>",
			MetaTitle:       str("Contact Us - Get in Touch"),
			MetaDescription: str("Contact our customer service team for any questions."),
			IsPublished:     true,
			Template:        models.PageTemplateContact,
			CreatedAt:       ts("2024-01-02T00:00:00Z"),
			UpdatedAt:       ts("2024-01-02T00:00:00Z"),
		},
	}
}
