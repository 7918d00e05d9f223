package search

import (
	"strconv"
	"strings"

	"storefront-service/internal/models"
)

// MatchCollection returns the products that satisfy every condition of the collection,
// in product order. A collection without conditions matches nothing.
func MatchCollection(collection models.Collection, products []models.Product) []models.Product {
	out := make([]models.Product, 0)
	if len(collection.Conditions) == 0 {
		return out
	}
	for _, p := range products {
		if matchesAll(collection.Conditions, p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesAll(conditions []models.CollectionCondition, p models.Product) bool {
	for _, c := range conditions {
		if !Matches(c, p) {
			return false
		}
	}
	return true
}

// Matches evaluates a single condition against a product
func Matches(c models.CollectionCondition, p models.Product) bool {
	switch c.Field {
	case models.CollectionFieldTitle:
		return compareText(c.Relation, p.Name, c.Value)
	case models.CollectionFieldType:
		return compareText(c.Relation, p.ProductType, c.Value)
	case models.CollectionFieldVendor:
		return compareText(c.Relation, p.Vendor, c.Value)
	case models.CollectionFieldPrice:
		return compareNumber(c.Relation, p.Price, c.Value)
	case models.CollectionFieldWeight:
		return compareNumber(c.Relation, p.Weight, c.Value)
	case models.CollectionFieldTag:
		return compareTags(c.Relation, p.Tags, c.Value)
	}
	return false
}

func compareText(rel models.CollectionRelation, field, value string) bool {
	f, v := strings.ToLower(field), strings.ToLower(strings.TrimSpace(value))
	switch rel {
	case models.RelationEquals:
		return f == v
	case models.RelationNotEquals:
		return f != v
	case models.RelationStartsWith:
		return strings.HasPrefix(f, v)
	case models.RelationEndsWith:
		return strings.HasSuffix(f, v)
	case models.RelationContains:
		return strings.Contains(f, v)
	case models.RelationNotContains:
		return !strings.Contains(f, v)
	case models.RelationGreaterThan, models.RelationLessThan:
		if n, err := strconv.ParseFloat(field, 64); err == nil {
			return compareNumber(rel, n, value)
		}
		if rel == models.RelationGreaterThan {
			return f > v
		}
		return f < v
	}
	return false
}

func compareNumber(rel models.CollectionRelation, field float64, value string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	switch rel {
	case models.RelationEquals:
		return field == v
	case models.RelationNotEquals:
		return field != v
	case models.RelationGreaterThan:
		return field > v
	case models.RelationLessThan:
		return field < v
	}
	return compareText(rel, strconv.FormatFloat(field, 'f', -1, 64), value)
}

// compareTags treats the product as matching if any tag satisfies the relation;
// the negative relations require that no tag matches the positive form
func compareTags(rel models.CollectionRelation, tags []string, value string) bool {
	switch rel {
	case models.RelationNotEquals:
		return !compareTags(models.RelationEquals, tags, value)
	case models.RelationNotContains:
		return !compareTags(models.RelationContains, tags, value)
	}
	for _, t := range tags {
		if compareText(rel, t, value) {
			return true
		}
	}
	return false
}
