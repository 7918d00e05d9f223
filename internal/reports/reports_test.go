package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/models"
)

func sampleData() ([]models.Order, []models.Product, []models.Customer) {
	phone := "+1-555-0100"
	customer := models.Customer{
		ID: "c1", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: &phone,
		Status: models.CustomerStatusActive, OrdersCount: 1, TotalSpent: 229.98,
		Addresses: []models.Address{{FirstName: "John", LastName: "Doe", Address1: "123 Main St", City: "New York", Province: "NY", Country: "US", Zip: "10001", IsDefault: true}},
	}
	products := []models.Product{
		{ID: "p1", Name: "Wireless Headphones", SKU: "WH-001", Price: 199.99, Quantity: 50, TrackQuantity: true, Status: models.ProductStatusActive,
			Variants: []models.ProductVariant{{ID: "v1", Title: "Black", SKU: "WH-001-BLK", Price: 199.99, Quantity: 0}}},
		{ID: "p2", Name: "Cotton T-Shirt", SKU: "TS-001", Price: 29.99, Quantity: 100, TrackQuantity: true, Status: models.ProductStatusActive},
	}
	orders := []models.Order{{
		ID: "o1", OrderNumber: "#1001", Customer: customer,
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Wireless Headphones", SKU: "WH-001", Quantity: 1, Price: 199.99, Total: 199.99},
			{ProductID: "p2", Name: "Cotton T-Shirt", SKU: "TS-001", Quantity: 1, Price: 29.99, Total: 29.99},
		},
		Subtotal: 229.98, Total: 229.98, Status: models.OrderStatusDelivered, PaymentStatus: models.PaymentStatusPaid,
		ShippingAddress: customer.Addresses[0], BillingAddress: customer.Addresses[0], PaymentMethod: "cod",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	return orders, products, []models.Customer{customer}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestSalesWorkbook(t *testing.T) {
	orders, products, _ := sampleData()
	data, err := SalesWorkbook(orders, products)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"Orders", "Monthly Revenue", "Top Products"}, f.GetSheetList())
	assert.Equal(t, "Order", cell(t, f, "Orders", "A1"))
	assert.Equal(t, "#1001", cell(t, f, "Orders", "A2"))
	assert.Equal(t, "John Doe", cell(t, f, "Orders", "C2"))
	assert.Equal(t, "229.98", cell(t, f, "Orders", "N2"))
	assert.Equal(t, "2024-03", cell(t, f, "Monthly Revenue", "A2"))
	assert.Equal(t, "Wireless Headphones", cell(t, f, "Top Products", "A2"))
	assert.Equal(t, "Cotton T-Shirt", cell(t, f, "Top Products", "A3"))
}

func TestCustomersWorkbook(t *testing.T) {
	_, _, customers := sampleData()
	data, err := CustomersWorkbook(customers)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, "john.doe@example.com", cell(t, f, "Customers", "C2"))
	assert.Equal(t, "New York", cell(t, f, "Customers", "I2"))
}

func TestInventoryWorkbookListsVariants(t *testing.T) {
	_, products, _ := sampleData()
	data, err := InventoryWorkbook(products)
	require.NoError(t, err)

	f := open(t, data)
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "WH-001-BLK", rows[2][2])
	assert.Equal(t, "FALSE", rows[2][9])
	assert.Equal(t, "TS-001", rows[3][2])
}

func TestInvoiceIsPDF(t *testing.T) {
	orders, _, _ := sampleData()
	data, err := Invoice(orders[0], models.DefaultStoreSettings())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$9.99", formatCurrency(9.99, currencySymbol("USD")))
	assert.Equal(t, "-EUR 5.00", formatCurrency(-5, currencySymbol("eur")))
	assert.Equal(t, "John Doe, 123 Main St, New York NY 10001, US", formatAddress(models.Address{
		FirstName: "John", LastName: "Doe", Address1: "123 Main St", City: "New York", Province: "NY", Zip: "10001", Country: "US",
	}))
}
