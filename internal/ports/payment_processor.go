package ports

import (
	"context"

	"github.com/aalvaropc/payflow/internal/domain"
)

// PaymentProcessor executes a payment against a backend.
type PaymentProcessor interface {
	Process(ctx context.Context, req domain.Request) (domain.PaymentResponse, error)
}

// Refunder is implemented by processors that can reverse a transaction.
type Refunder interface {
	Refund(ctx context.Context, transactionID string) (domain.PaymentResponse, error)
}

// RecurringCharger is implemented by processors that can start a recurring charge.
type RecurringCharger interface {
	ChargeRecurring(ctx context.Context, req domain.Request) (domain.PaymentResponse, error)
}

// Named exposes a short processor name for trace records.
type Named interface {
	Name() string
}
