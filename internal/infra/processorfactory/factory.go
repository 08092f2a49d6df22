// Package processorfactory maps a payment's (type, currency) onto a processor.
package processorfactory

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// Processors are the concrete backends the factory can hand out.
type Processors struct {
	Stripe  ports.PaymentProcessor
	Local   ports.PaymentProcessor
	Offline ports.PaymentProcessor
}

// Factory is stateless after construction: the same (type, currency)
// always yields the same processor instance.
type Factory struct {
	procs  Processors
	stripe map[string]struct{}
	local  map[string]struct{}
}

func New(procs Processors, cfg domain.ProcessorsConfig) *Factory {
	return &Factory{
		procs:  procs,
		stripe: currencySet(cfg.StripeCurrencies),
		local:  currencySet(cfg.LocalCurrencies),
	}
}

func (f *Factory) Select(payment domain.PaymentData) (ports.PaymentProcessor, error) {
	cur := currencyKey(payment.Currency)
	_, isStripe := f.stripe[cur]
	_, isLocal := f.local[cur]

	var p ports.PaymentProcessor
	switch payment.Type {
	case domain.PaymentOffline:
		p = f.procs.Offline
	case domain.PaymentCard:
		switch {
		case isStripe:
			p = f.procs.Stripe
		case isLocal:
			p = f.procs.Local
		}
	case domain.PaymentLocal:
		if isLocal {
			p = f.procs.Local
		}
	case domain.PaymentRecurring:
		if isStripe {
			p = f.procs.Stripe
		}
	}

	if p == nil {
		return nil, &domain.OpError{
			Op:   "processorfactory.select",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("type %q with currency %q: %w", payment.Type, cur, domain.ErrUnsupportedPayment),
		}
	}
	return p, nil
}

func currencySet(codes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if c = currencyKey(c); c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

// currencyKey only normalizes case; config lists are validated by the loader.
func currencyKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

var _ ports.ProcessorFactory = (*Factory)(nil)
