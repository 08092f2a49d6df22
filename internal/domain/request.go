package domain

// Request aggregates the customer and payment for a single transaction.
// It is built once and only exposes copies afterwards.
type Request struct {
	customer CustomerData
	payment  PaymentData
}

func NewRequest(customer CustomerData, payment PaymentData) Request {
	return Request{customer: customer, payment: payment}
}

func (r Request) Customer() CustomerData { return r.customer }

func (r Request) Payment() PaymentData { return r.payment }
