package ports

import (
	"context"

	"github.com/aalvaropc/payflow/internal/domain"
)

// Notifier informs the customer about a transaction outcome.
type Notifier interface {
	Notify(ctx context.Context, customer domain.CustomerData, resp domain.PaymentResponse) error
}
