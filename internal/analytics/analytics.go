// Package analytics derives summary metrics from store collections. Nothing is cached;
// callers recompute on every read.
package analytics

import (
	"math"
	"sort"

	"storefront-service/internal/models"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 5
	monthLayout       = "2006-01"
)

// Compute aggregates revenue, counts, best sellers, recent orders and monthly revenue
func Compute(products []models.Product, orders []models.Order, customers []models.Customer) models.Analytics {
	var revenue float64
	for _, o := range orders {
		revenue += o.Total
	}
	revenue = round(revenue)

	var aov float64
	if len(orders) > 0 {
		aov = revenue / float64(len(orders))
	}

	return models.Analytics{
		TotalRevenue:      revenue,
		TotalOrders:       len(orders),
		TotalCustomers:    len(customers),
		TotalProducts:     len(products),
		AverageOrderValue: aov,
		TopProducts:       TopProducts(products, orders, topProductsLimit),
		RecentOrders:      RecentOrders(orders, recentOrdersLimit),
		MonthlyRevenue:    MonthlyRevenue(orders),
	}
}

// TopProducts ranks products by the revenue of their order items. Products that never
// sold fill the remaining slots in collection order. Ties keep collection order.
func TopProducts(products []models.Product, orders []models.Order, limit int) []models.TopProduct {
	type tally struct {
		revenue float64
		units   int
		orders  int
	}
	sales := make(map[string]*tally)
	for _, o := range orders {
		counted := make(map[string]bool)
		for _, item := range o.Items {
			t := sales[item.ProductID]
			if t == nil {
				t = &tally{}
				sales[item.ProductID] = t
			}
			t.revenue += item.Total
			t.units += item.Quantity
			if !counted[item.ProductID] {
				t.orders++
				counted[item.ProductID] = true
			}
		}
	}

	ranked := make([]models.TopProduct, len(products))
	for i, p := range products {
		ranked[i] = models.TopProduct{Product: p}
		if t := sales[p.ID]; t != nil {
			ranked[i].Revenue = round(t.revenue)
			ranked[i].Units = t.units
			ranked[i].Orders = t.orders
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RecentOrders returns the newest orders first. Orders with equal timestamps keep
// insertion order.
func RecentOrders(orders []models.Order, limit int) []models.Order {
	sorted := append([]models.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []models.Order{}
	}
	return sorted
}

// MonthlyRevenue buckets order totals by the UTC month of creation, oldest first
func MonthlyRevenue(orders []models.Order) []models.MonthlyRevenue {
	buckets := make(map[string]*models.MonthlyRevenue)
	for _, o := range orders {
		month := o.CreatedAt.UTC().Format(monthLayout)
		b := buckets[month]
		if b == nil {
			b = &models.MonthlyRevenue{Month: month}
			buckets[month] = b
		}
		b.Revenue += o.Total
		b.Orders++
	}
	out := make([]models.MonthlyRevenue, 0, len(buckets))
	for _, b := range buckets {
		b.Revenue = round(b.Revenue)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
