package processors

import (
	"context"

	"github.com/google/uuid"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// Local simulates an in-country processor. Every charge and refund succeeds.
type Local struct {
	newID func() string
}

func NewLocal() *Local {
	return &Local{newID: uuid.NewString}
}

func (l *Local) Name() string { return "local" }

// Process always succeeds.
func (l *Local) Process(_ context.Context, _ domain.Request) (domain.PaymentResponse, error) {
	return domain.PaymentResponse{
		Success:       true,
		TransactionID: "local-" + l.newID(),
		Message:       "processed by local processor",
	}, nil
}

func (l *Local) Refund(_ context.Context, transactionID string) (domain.PaymentResponse, error) {
	return domain.PaymentResponse{
		Success:       true,
		TransactionID: transactionID,
		Message:       "refund processed by local processor",
	}, nil
}

var (
	_ ports.PaymentProcessor = (*Local)(nil)
	_ ports.Refunder         = (*Local)(nil)
	_ ports.Named            = (*Local)(nil)
)
