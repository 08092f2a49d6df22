package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentType selects how a payment is carried out.
type PaymentType string

const (
	PaymentCard      PaymentType = "card"
	PaymentRecurring PaymentType = "recurring"
	PaymentOffline   PaymentType = "offline"
	PaymentLocal     PaymentType = "local"
)

// ParsePaymentType is case-insensitive and rejects unknown values.
func ParsePaymentType(s string) (PaymentType, error) {
	t := PaymentType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case PaymentCard, PaymentRecurring, PaymentOffline, PaymentLocal:
		return t, nil
	default:
		return "", invalidData("payment.type", "type", fmt.Sprintf("unknown payment type %q", s))
	}
}

// PaymentData describes what is charged and how.
type PaymentData struct {
	Amount   decimal.Decimal
	Currency string
	Type     PaymentType
	// Source is an opaque payment-method token (e.g. "tok_visa").
	Source string
}

// NewPaymentData validates amount, currency and type, normalising the currency.
func NewPaymentData(amount decimal.Decimal, currency string, typ PaymentType, source string) (PaymentData, error) {
	if !amount.IsPositive() {
		return PaymentData{}, invalidData("payment.new", "amount", "amount must be positive")
	}

	cur, err := NormalizeCurrency(currency)
	if err != nil {
		return PaymentData{}, err
	}

	if _, err := ParsePaymentType(string(typ)); err != nil {
		return PaymentData{}, err
	}

	return PaymentData{
		Amount:   amount,
		Currency: cur,
		Type:     typ,
		Source:   strings.TrimSpace(source),
	}, nil
}

// MinorUnits returns the amount in cents, rounded half-up to two decimals.
func (p PaymentData) MinorUnits() int64 {
	return p.Amount.Round(2).Shift(2).IntPart()
}

// NormalizeCurrency upper-cases a 3-letter ISO code and rejects anything else.
func NormalizeCurrency(s string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(s))
	if len(cur) != 3 {
		return "", invalidData("payment.currency", "currency", fmt.Sprintf("invalid currency %q", s))
	}
	for _, r := range cur {
		if r < 'A' || r > 'Z' {
			return "", invalidData("payment.currency", "currency", fmt.Sprintf("invalid currency %q", s))
		}
	}
	return cur, nil
}
