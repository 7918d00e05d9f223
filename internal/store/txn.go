package store

import (
	"context"
	"time"

	"storefront-service/internal/models"
)

// Command is a typed mutation consumed by Store.Execute
type Command interface {
	Name() string
	apply(tx *txn) error
}

// deletion is implemented by commands that must be confirmed before they run
type deletion interface {
	target(state *models.Snapshot) (ConfirmRequest, error)
}

// txn is the working copy of one batch. Slices are copied on first write so the
// committed state is never modified in place.
type txn struct {
	ctx     context.Context
	store   *Store
	state   models.Snapshot
	now     time.Time
	actorID string
	changed map[string]bool
	events  []Event
	media   []models.Media
}

func newTxn(ctx context.Context, s *Store, actorID string) *txn {
	return &txn{
		ctx:     ctx,
		store:   s,
		state:   s.state,
		now:     s.now().UTC(),
		actorID: actorID,
		changed: make(map[string]bool),
	}
}

func (tx *txn) emit(entity, action, id string) {
	tx.events = append(tx.events, Event{
		Type:       entity + "." + action,
		Entity:     entity,
		Action:     action,
		EntityID:   id,
		ActorID:    tx.actorID,
		OccurredAt: tx.now,
	})
}

func (tx *txn) changedSlices() []string {
	out := make([]string, 0, len(tx.changed))
	for _, name := range models.TrackedSlices {
		if tx.changed[name] {
			out = append(out, name)
		}
	}
	return out
}

func (tx *txn) products() []models.Product {
	if !tx.changed[models.SliceProducts] {
		tx.state.Products = append([]models.Product(nil), tx.state.Products...)
		tx.changed[models.SliceProducts] = true
	}
	return tx.state.Products
}

func (tx *txn) orders() []models.Order {
	if !tx.changed[models.SliceOrders] {
		tx.state.Orders = append([]models.Order(nil), tx.state.Orders...)
		tx.changed[models.SliceOrders] = true
	}
	return tx.state.Orders
}

func (tx *txn) customers() []models.Customer {
	if !tx.changed[models.SliceCustomers] {
		tx.state.Customers = append([]models.Customer(nil), tx.state.Customers...)
		tx.changed[models.SliceCustomers] = true
	}
	return tx.state.Customers
}

func (tx *txn) categories() []models.Category {
	if !tx.changed[models.SliceCategories] {
		tx.state.Categories = append([]models.Category(nil), tx.state.Categories...)
		tx.changed[models.SliceCategories] = true
	}
	return tx.state.Categories
}

func (tx *txn) collections() []models.Collection {
	if !tx.changed[models.SliceCollections] {
		tx.state.Collections = append([]models.Collection(nil), tx.state.Collections...)
		tx.changed[models.SliceCollections] = true
	}
	return tx.state.Collections
}

func (tx *txn) discounts() []models.Discount {
	if !tx.changed[models.SliceDiscounts] {
		tx.state.Discounts = append([]models.Discount(nil), tx.state.Discounts...)
		tx.changed[models.SliceDiscounts] = true
	}
	return tx.state.Discounts
}

func (tx *txn) pages() []models.Page {
	if !tx.changed[models.SlicePages] {
		tx.state.Pages = append([]models.Page(nil), tx.state.Pages...)
		tx.changed[models.SlicePages] = true
	}
	return tx.state.Pages
}

// removeAt returns items without index i, in a fresh backing array
func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
