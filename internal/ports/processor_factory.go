package ports

import "github.com/aalvaropc/payflow/internal/domain"

// ProcessorFactory maps payment data to a concrete processor.
type ProcessorFactory interface {
	Select(payment domain.PaymentData) (PaymentProcessor, error)
}
