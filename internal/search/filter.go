// Package search filters store collections by a free-text query. Every filter returns
// an order-preserving subsequence of its input; a blank query returns the input as is.
package search

import (
	"strings"

	"storefront-service/internal/models"
)

// Filter keeps the items for which any projected field contains query, case-insensitively
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Products matches name, sku and category
func Products(products []models.Product, query string) []models.Product {
	return Filter(products, query, func(p models.Product) []string {
		return []string{p.Name, p.SKU, p.Category}
	})
}

// Orders matches order number, customer email and status
func Orders(orders []models.Order, query string) []models.Order {
	return Filter(orders, query, func(o models.Order) []string {
		return []string{o.OrderNumber, o.Customer.Email, string(o.Status)}
	})
}

// Customers matches first name, last name and email
func Customers(customers []models.Customer, query string) []models.Customer {
	return Filter(customers, query, func(c models.Customer) []string {
		return []string{c.FirstName, c.LastName, c.Email}
	})
}

// Pages matches name, slug and template
func Pages(pages []models.Page, query string) []models.Page {
	return Filter(pages, query, func(p models.Page) []string {
		return []string{p.Name, p.Slug, string(p.Template)}
	})
}

// Categories matches name and slug
func Categories(categories []models.Category, query string) []models.Category {
	return Filter(categories, query, func(c models.Category) []string {
		return []string{c.Name, c.Slug}
	})
}

// Discounts matches the code
func Discounts(discounts []models.Discount, query string) []models.Discount {
	return Filter(discounts, query, func(d models.Discount) []string {
		return []string{d.Code}
	})
}

// All runs every entity filter against one snapshot
func All(s models.Snapshot, query string) models.SearchResults {
	return models.SearchResults{
		Query:      strings.TrimSpace(query),
		Products:   Products(s.Products, query),
		Orders:     Orders(s.Orders, query),
		Customers:  Customers(s.Customers, query),
		Pages:      Pages(s.Pages, query),
		Categories: Categories(s.Categories, query),
		Discounts:  Discounts(s.Discounts, query),
	}
}
