package store

import (
	"context"

	"storefront-service/internal/models"
)

// ConfirmRequest describes the delete awaiting confirmation
type ConfirmRequest struct {
	Entity string
	ID     string
	Label  string
}

// Confirmer gates every delete. It may block until the answer is known.
type Confirmer interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(ctx context.Context, req ConfirmRequest) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, req ConfirmRequest) (bool, error) {
	return f(ctx, req)
}

// AlwaysConfirm approves every delete
var AlwaysConfirm = ConfirmFunc(func(context.Context, ConfirmRequest) (bool, error) { return true, nil })

// NeverConfirm declines every delete
var NeverConfirm = ConfirmFunc(func(context.Context, ConfirmRequest) (bool, error) { return false, nil })

type confirmKey struct{}

// WithConfirmation records an explicit yes/no answer in the context
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, confirmed)
}

// ContextConfirmer answers from the value stored by WithConfirmation; absent means no.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, _ ConfirmRequest) (bool, error) {
	confirmed, _ := ctx.Value(confirmKey{}).(bool)
	return confirmed, nil
}

// Identity exposes the authenticated actor of a request
type Identity interface {
	Actor(ctx context.Context) (models.Actor, bool)
}

// IdentityFunc adapts a function to the Identity interface
type IdentityFunc func(ctx context.Context) (models.Actor, bool)

func (f IdentityFunc) Actor(ctx context.Context) (models.Actor, bool) {
	return f(ctx)
}

// StaticIdentity always reports the same actor
func StaticIdentity(actor models.Actor) Identity {
	return IdentityFunc(func(context.Context) (models.Actor, bool) { return actor, true })
}

// MediaLibrary receives images attached to products
type MediaLibrary interface {
	AddMedia(ctx context.Context, media models.Media) error
}
