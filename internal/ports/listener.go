package ports

import (
	"context"

	"github.com/aalvaropc/payflow/internal/domain"
)

// Listener receives domain events after a transaction completes.
type Listener interface {
	OnEvent(ctx context.Context, evt domain.Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, evt domain.Event) error

func (f ListenerFunc) OnEvent(ctx context.Context, evt domain.Event) error { return f(ctx, evt) }

// Broadcaster fans an event out to its subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, evt domain.Event) error
}
