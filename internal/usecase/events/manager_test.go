package events

import (
	"context"
	"errors"
	"testing"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

func record(order *[]string, name string) ports.Listener {
	return ports.ListenerFunc(func(_ context.Context, _ domain.Event) error {
		*order = append(*order, name)
		return nil
	})
}

func TestBroadcast_InvokesInSubscriptionOrder(t *testing.T) {
	var order []string
	m := NewManager()
	m.Subscribe("a", record(&order, "a"))
	m.Subscribe("b", record(&order, "b"))
	m.Subscribe("c", record(&order, "c"))

	if err := m.Broadcast(context.Background(), domain.Event{Type: domain.EventPaymentSucceeded}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestBroadcast_IsolatesFailingSubscribers(t *testing.T) {
	var order []string
	boom := errors.New("smtp down")

	m := NewManager()
	m.Subscribe("failing", ports.ListenerFunc(func(context.Context, domain.Event) error { return boom }))
	m.Subscribe("panicking", ports.ListenerFunc(func(context.Context, domain.Event) error { panic("nil map") }))
	m.Subscribe("last", record(&order, "last"))

	err := m.Broadcast(context.Background(), domain.Event{Type: domain.EventPaymentFailed})
	if err == nil {
		t.Fatalf("expected joined error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected subscriber error in chain, got %v", err)
	}
	if !errors.Is(err, domain.ErrExecution) {
		t.Fatalf("expected panic to be converted into an error, got %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("expected last subscriber to still run, got %v", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	var order []string
	m := NewManager()
	id := m.Subscribe("a", record(&order, "a"))
	m.Subscribe("b", record(&order, "b"))

	if !m.Unsubscribe(id) {
		t.Fatalf("expected unsubscribe to succeed")
	}
	if m.Unsubscribe(id) {
		t.Fatalf("expected second unsubscribe to report false")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", m.Len())
	}

	_ = m.Broadcast(context.Background(), domain.Event{})
	if len(order) != 1 || order[0] != "b" {
		t.Fatalf("expected only b, got %v", order)
	}
}

func TestBroadcast_NoSubscribers(t *testing.T) {
	if err := NewManager().Broadcast(context.Background(), domain.Event{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
