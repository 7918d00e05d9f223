package auth

import (
	"context"

	"storefront-service/internal/models"
)

type actorKey struct{}

// DevActor is used when development mode accepts unauthenticated requests
var DevActor = models.Actor{
	ID:    "00000000-0000-0000-0000-000000000001",
	Email: "dev@localhost",
	Name:  "Development User",
	Role:  "admin",
}

// WithActor attaches the authenticated actor to ctx
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor attached by WithActor. It has the shape of
// store.IdentityFunc so the store can check identity without knowing about HTTP.
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	if !ok || actor.ID == "" {
		return models.Actor{}, false
	}
	return actor, true
}
