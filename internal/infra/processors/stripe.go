// Package processors holds the concrete payment backends.
package processors

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/stripeapi"
	"github.com/aalvaropc/payflow/internal/ports"
)

// Stripe charges through a Stripe-compatible API. It supports refunds and
// recurring charges.
type Stripe struct {
	api     *stripeapi.Client
	priceID string
}

func NewStripe(api *stripeapi.Client, recurringPriceID string) *Stripe {
	return &Stripe{api: api, priceID: strings.TrimSpace(recurringPriceID)}
}

func (s *Stripe) Name() string { return "stripe" }

func (s *Stripe) Process(ctx context.Context, req domain.Request) (domain.PaymentResponse, error) {
	c := req.Customer()
	p := req.Payment()

	ch, err := s.api.CreateCharge(ctx, stripeapi.ChargeParams{
		AmountMinor:  p.MinorUnits(),
		Currency:     p.Currency,
		Source:       p.Source,
		Description:  fmt.Sprintf("payflow charge for %s", c.ID),
		ReceiptEmail: c.Contact.Email,
	})
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	if !ch.Succeeded() {
		reason := ch.FailureMessage
		if reason == "" {
			reason = "charge " + ch.Status
		}
		return domain.PaymentResponse{Success: false, TransactionID: ch.ID, Message: reason}, nil
	}
	return domain.PaymentResponse{Success: true, TransactionID: ch.ID, Message: "charge succeeded"}, nil
}

func (s *Stripe) Refund(ctx context.Context, transactionID string) (domain.PaymentResponse, error) {
	rf, err := s.api.CreateRefund(ctx, transactionID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	ok := rf.Status == "succeeded" || rf.Status == "pending"
	return domain.PaymentResponse{Success: ok, TransactionID: rf.ID, Message: "refund " + rf.Status}, nil
}

// ChargeRecurring creates a remote customer and subscribes it to the configured price.
func (s *Stripe) ChargeRecurring(ctx context.Context, req domain.Request) (domain.PaymentResponse, error) {
	if s.priceID == "" {
		return domain.PaymentResponse{}, &domain.OpError{
			Op:   "processors.stripe.recurring",
			Kind: domain.KindInvalidConfig,
			Path: "processors.stripe.recurring_price_id",
			Err:  fmt.Errorf("STRIPE_RECURRING_PRICE_ID is not set: %w", domain.ErrInvalidConfig),
		}
	}

	cust, err := s.api.CreateCustomer(ctx, req.Customer(), req.Payment().Source)
	if err != nil {
		return domain.PaymentResponse{}, err
	}
	sub, err := s.api.CreateSubscription(ctx, cust.ID, s.priceID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	ok := sub.Status == "active" || sub.Status == "trialing"
	return domain.PaymentResponse{Success: ok, TransactionID: sub.ID, Message: "subscription " + sub.Status}, nil
}

var (
	_ ports.PaymentProcessor = (*Stripe)(nil)
	_ ports.Refunder         = (*Stripe)(nil)
	_ ports.RecurringCharger = (*Stripe)(nil)
	_ ports.Named            = (*Stripe)(nil)
)
