// Package events holds the ordered listener registry used to broadcast domain events.
package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// SubscriptionID identifies a listener for Unsubscribe.
type SubscriptionID int

type subscription struct {
	id       SubscriptionID
	name     string
	listener ports.Listener
}

// Manager broadcasts events to subscribers in subscription order.
// A failing or panicking subscriber does not stop the others.
type Manager struct {
	mu     sync.Mutex
	subs   []subscription
	nextID SubscriptionID
	log    *slog.Logger
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ ports.Broadcaster = (*Manager)(nil)

// Subscribe appends a listener. name is only used in logs and errors.
func (m *Manager) Subscribe(name string, l ports.Listener) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.subs = append(m.subs, subscription{id: m.nextID, name: name, listener: l})
	return m.nextID
}

// Unsubscribe removes a listener and reports whether it was registered.
func (m *Manager) Unsubscribe(id SubscriptionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.subs {
		if s.id == id {
			m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Broadcast delivers evt to every subscriber and returns the joined failures.
func (m *Manager) Broadcast(ctx context.Context, evt domain.Event) error {
	m.mu.Lock()
	snapshot := make([]subscription, len(m.subs))
	copy(snapshot, m.subs)
	m.mu.Unlock()

	var errs []error
	for _, s := range snapshot {
		if err := deliver(ctx, s, evt); err != nil {
			m.log.Warn("events.subscriber.failed",
				"subscriber", s.name,
				"event", string(evt.Type),
				"err", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, s subscription, evt domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.OpError{
				Op:   "events.deliver",
				Kind: domain.KindExecution,
				Path: s.name,
				Err:  fmt.Errorf("panic: %v: %w", r, domain.ErrExecution),
			}
		}
	}()

	if err := s.listener.OnEvent(ctx, evt); err != nil {
		return &domain.OpError{
			Op:   "events.deliver",
			Kind: domain.KindExecution,
			Path: s.name,
			Err:  err,
		}
	}
	return nil
}
