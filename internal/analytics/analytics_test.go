package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestComputeSingleOrder(t *testing.T) {
	orders := []models.Order{{ID: "o1", OrderNumber: "#1001", Total: 229.98, CreatedAt: at(2024, 1, 15)}}
	customers := []models.Customer{{ID: "c1"}}

	a := Compute(nil, orders, customers)

	assert.Equal(t, 229.98, a.TotalRevenue)
	assert.Equal(t, 229.98, a.AverageOrderValue)
	assert.Equal(t, 1, a.TotalOrders)
	assert.Equal(t, 1, a.TotalCustomers)
	assert.Equal(t, 0, a.TotalProducts)
}

func TestComputeWithoutOrders(t *testing.T) {
	a := Compute([]models.Product{{ID: "p1"}}, nil, nil)

	assert.Equal(t, 0.0, a.TotalRevenue)
	assert.Equal(t, 0.0, a.AverageOrderValue)
	assert.Equal(t, 0, a.TotalOrders)
	assert.Empty(t, a.RecentOrders)
	assert.Empty(t, a.MonthlyRevenue)
	require.Len(t, a.TopProducts, 1)
	assert.Equal(t, 0.0, a.TopProducts[0].Revenue)
}

func TestAverageOrderValue(t *testing.T) {
	orders := []models.Order{{Total: 10}, {Total: 20}, {Total: 45.5}}
	a := Compute(nil, orders, nil)

	assert.Equal(t, 75.5, a.TotalRevenue)
	assert.Equal(t, a.TotalRevenue/float64(a.TotalOrders), a.AverageOrderValue)

	// not rounded to cents
	a = Compute(nil, []models.Order{{Total: 10}, {Total: 10}, {Total: 10.01}}, nil)
	assert.Equal(t, 30.01, a.TotalRevenue)
	assert.Equal(t, 30.01/3, a.AverageOrderValue)
	assert.NotEqual(t, 10.0, a.AverageOrderValue)
}

func TestTopProducts(t *testing.T) {
	products := []models.Product{
		{ID: "a", Name: "A", Price: 100},
		{ID: "b", Name: "B", Price: 10},
		{ID: "c", Name: "C", Price: 50},
		{ID: "d", Name: "D"},
		{ID: "e", Name: "E"},
		{ID: "f", Name: "F"},
	}
	orders := []models.Order{
		{Items: []models.OrderItem{
			{ProductID: "b", Quantity: 3, Total: 30},
			{ProductID: "c", Quantity: 1, Total: 50},
		}},
		{Items: []models.OrderItem{
			{ProductID: "b", Quantity: 5, Total: 50},
			{ProductID: "deleted", Quantity: 1, Total: 999},
		}},
	}

	top := TopProducts(products, orders, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "b", top[0].Product.ID)
	assert.Equal(t, 80.0, top[0].Revenue)
	assert.Equal(t, 8, top[0].Units)
	assert.Equal(t, 2, top[0].Orders)
	assert.Equal(t, "c", top[1].Product.ID)
	// unsold products follow in collection order
	assert.Equal(t, []string{"a", "d", "e"}, []string{top[2].Product.ID, top[3].Product.ID, top[4].Product.ID})
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	orders := []models.Order{
		{ID: "1", CreatedAt: at(2024, 1, 1)},
		{ID: "2", CreatedAt: at(2024, 3, 1)},
		{ID: "3", CreatedAt: at(2024, 2, 1)},
		{ID: "4", CreatedAt: at(2024, 3, 1)},
		{ID: "5", CreatedAt: at(2023, 12, 1)},
		{ID: "6", CreatedAt: at(2024, 4, 1)},
	}
	recent := RecentOrders(orders, 5)
	got := make([]string, len(recent))
	for i, o := range recent {
		got[i] = o.ID
	}
	assert.Equal(t, []string{"6", "2", "4", "3", "1"}, got)
	assert.Equal(t, "1", orders[0].ID, "input is not reordered")
}

func TestMonthlyRevenue(t *testing.T) {
	orders := []models.Order{
		{Total: 100, CreatedAt: at(2024, 2, 10)},
		{Total: 50.25, CreatedAt: at(2024, 1, 3)},
		{Total: 25.25, CreatedAt: at(2024, 2, 28)},
	}
	got := MonthlyRevenue(orders)
	assert.Equal(t, []models.MonthlyRevenue{
		{Month: "2024-01", Revenue: 50.25, Orders: 1},
		{Month: "2024-02", Revenue: 125.25, Orders: 2},
	}, got)
}
