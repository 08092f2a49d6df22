package domain

import "time"

// Operation names the service call that produced a trace record.
type Operation string

const (
	OpCharge    Operation = "charge"
	OpRefund    Operation = "refund"
	OpRecurring Operation = "recurring"
)

// TransactionRecord is the single trace row written per service call.
type TransactionRecord struct {
	At        time.Time `json:"at"`
	Operation Operation `json:"operation"`

	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`

	Amount    string      `json:"amount"`
	Currency  string      `json:"currency"`
	Type      PaymentType `json:"type"`
	Processor string      `json:"processor"`

	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message,omitempty"`
}

// NewTransactionRecord flattens a request and its response.
func NewTransactionRecord(at time.Time, op Operation, req Request, processor string, resp PaymentResponse) TransactionRecord {
	c := req.Customer()
	p := req.Payment()
	return TransactionRecord{
		At:            at.UTC(),
		Operation:     op,
		CustomerID:    c.ID,
		CustomerName:  c.Name,
		Email:         c.Contact.Email,
		Phone:         c.Contact.Phone,
		Amount:        p.Amount.StringFixed(2),
		Currency:      p.Currency,
		Type:          p.Type,
		Processor:     processor,
		Success:       resp.Success,
		TransactionID: resp.TransactionID,
		Message:       resp.Message,
	}
}
