package ports

import "github.com/aalvaropc/payflow/internal/domain"

// CustomerHandler is one link of the customer validation chain.
// Handle returns nil when this link and every following link accept the customer.
type CustomerHandler interface {
	Handle(customer domain.CustomerData) error
	SetNext(next CustomerHandler) CustomerHandler
}
