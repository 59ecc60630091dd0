package action

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Actor is the authenticated user an action runs for
type Actor struct {
	UserID uuid.UUID
	Email  string
	// TokenID and TokenExpiresAt describe the access token the request came with
	TokenID        string
	TokenExpiresAt time.Time
}

type actorKey struct{}

// WithActor stores the actor in the context
func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in the context, or nil
func ActorFrom(ctx context.Context) *Actor {
	a, _ := ctx.Value(actorKey{}).(*Actor)
	return a
}
