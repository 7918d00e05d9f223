package persistence

import (
	"context"
	"errors"

	"storefront-service/internal/models"
)

// Restore loads the persisted namespace over base. The boolean is false when nothing
// has been persisted yet, in which case base is returned unchanged.
func Restore(ctx context.Context, storage Storage, namespace string, base models.Snapshot) (models.Snapshot, bool, error) {
	blob, err := storage.Get(ctx, namespace)
	if errors.Is(err, ErrNamespaceNotFound) {
		return base, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, &PersistenceError{Namespace: namespace, Op: "get", Err: err}
	}
	snapshot, err := Decode(blob, base)
	if err != nil {
		return models.Snapshot{}, false, &PersistenceError{Namespace: namespace, Op: "decode", Err: err}
	}
	return snapshot, true, nil
}
