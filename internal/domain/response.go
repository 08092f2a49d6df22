package domain

// PaymentResponse is the outcome of a processor call.
// Message carries the failure reason or a short status note.
type PaymentResponse struct {
	Success       bool
	TransactionID string
	Message       string
}
