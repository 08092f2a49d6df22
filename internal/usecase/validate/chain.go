// Package validate implements the customer validation chain.
//
// Each link inspects a CustomerData and either forwards to the next link or stops
// with a validation error; later links are never invoked after a failure.
package validate

import (
	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// link carries the next pointer shared by every concrete handler.
type link struct {
	next ports.CustomerHandler
}

func (l *link) forward(customer domain.CustomerData) error {
	if l.next == nil {
		return nil
	}
	return l.next.Handle(customer)
}

// NewChain links handlers in order and returns the head.
// An empty chain accepts every customer.
func NewChain(handlers ...ports.CustomerHandler) ports.CustomerHandler {
	if len(handlers) == 0 {
		return Accept{}
	}
	for i := 0; i < len(handlers)-1; i++ {
		handlers[i].SetNext(handlers[i+1])
	}
	return handlers[0]
}

// Default is the chain used by the service unless configured otherwise.
func Default() ports.CustomerHandler {
	return NewChain(NewCustomerID(), NewContact())
}

// ForChannel is Default plus a check that the customer can be notified on channel.
func ForChannel(channel domain.NotificationChannel) ports.CustomerHandler {
	return NewChain(NewCustomerID(), NewContact(), NewReachable(channel))
}

// Accept is a terminal handler that always succeeds.
type Accept struct{}

func (Accept) Handle(domain.CustomerData) error { return nil }

func (a Accept) SetNext(next ports.CustomerHandler) ports.CustomerHandler { return next }

var _ ports.CustomerHandler = Accept{}
