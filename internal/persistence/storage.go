// Package persistence writes the store's namespace blob to a key-value collaborator.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-service/internal/models"
)

// ErrNamespaceNotFound is returned by Storage.Get when nothing has been persisted yet
var ErrNamespaceNotFound = errors.New("namespace not found")

// Blob is a flat mapping from slice name to that slice's serialized value
type Blob map[string]json.RawMessage

// Storage is the key-value collaborator holding one blob per namespace
type Storage interface {
	Get(ctx context.Context, namespace string) (Blob, error)
	Put(ctx context.Context, namespace string, blob Blob) error
}

// PersistenceError wraps a failed storage operation
type PersistenceError struct {
	Namespace string
	Op        string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %s: %v", e.Op, e.Namespace, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Encode serializes the named slices of a snapshot
func Encode(s models.Snapshot, slices []string) (Blob, error) {
	values := map[string]interface{}{
		models.SliceProducts:        s.Products,
		models.SliceOrders:          s.Orders,
		models.SliceCustomers:       s.Customers,
		models.SliceCategories:      s.Categories,
		models.SliceCollections:     s.Collections,
		models.SliceDiscounts:       s.Discounts,
		models.SlicePages:           s.Pages,
		models.SliceStoreSettings:   s.StoreSettings,
		models.SlicePaymentSettings: s.PaymentSettings,
	}
	blob := make(Blob, len(slices))
	for _, name := range slices {
		v, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("unknown slice %q", name)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		blob[name] = raw
	}
	return blob, nil
}

// Decode reads every tracked slice present in blob into a snapshot. Slices missing
// from the blob keep the values of base.
func Decode(blob Blob, base models.Snapshot) (models.Snapshot, error) {
	out := base.Clone()
	targets := map[string]interface{}{
		models.SliceProducts:        &out.Products,
		models.SliceOrders:          &out.Orders,
		models.SliceCustomers:       &out.Customers,
		models.SliceCategories:      &out.Categories,
		models.SliceCollections:     &out.Collections,
		models.SliceDiscounts:       &out.Discounts,
		models.SlicePages:           &out.Pages,
		models.SliceStoreSettings:   &out.StoreSettings,
		models.SlicePaymentSettings: &out.PaymentSettings,
	}
	for name, target := range targets {
		raw, ok := blob[name]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}
	return out, nil
}

// Merge copies every key of update onto a copy of previous. Keys of previous that
// update does not mention are preserved.
func Merge(previous, update Blob) Blob {
	out := make(Blob, len(previous)+len(update))
	for k, v := range previous {
		out[k] = v
	}
	for k, v := range update {
		out[k] = v
	}
	return out
}
