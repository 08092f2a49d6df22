package domain

import "time"

// EventType names a domain event broadcast to listeners.
type EventType string

const (
	EventPaymentSucceeded EventType = "payment.succeeded"
	EventPaymentFailed    EventType = "payment.failed"
	EventPaymentRefunded  EventType = "payment.refunded"
	EventRecurringStarted EventType = "payment.recurring_started"
)

// Event is what listeners receive after a transaction completes.
type Event struct {
	Type       EventType
	Customer   CustomerData
	Payment    PaymentData
	Response   PaymentResponse
	OccurredAt time.Time
}

// OutcomeEvent picks succeeded/failed from the response.
func OutcomeEvent(resp PaymentResponse) EventType {
	if resp.Success {
		return EventPaymentSucceeded
	}
	return EventPaymentFailed
}
