package stripeapi

import (
	"context"
	"strconv"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
)

type ChargeParams struct {
	AmountMinor  int64
	Currency     string
	Source       string
	Description  string
	ReceiptEmail string
}

type Charge struct {
	ID             string
	Status         string
	FailureMessage string
}

func (c Charge) Succeeded() bool { return c.Status == "succeeded" }

type Refund struct {
	ID     string
	Status string
}

type Customer struct {
	ID string
}

type Subscription struct {
	ID     string
	Status string
}

func (c *Client) CreateCharge(ctx context.Context, p ChargeParams) (Charge, error) {
	form := formOf(map[string]string{
		"amount":        strconv.FormatInt(p.AmountMinor, 10),
		"currency":      strings.ToLower(p.Currency),
		"source":        p.Source,
		"description":   p.Description,
		"receipt_email": p.ReceiptEmail,
	})

	doc, err := c.post(ctx, "stripeapi.charge", "/v1/charges", form)
	if err != nil {
		return Charge{}, err
	}
	return Charge{
		ID:             lookup(doc, "$.id"),
		Status:         lookup(doc, "$.status"),
		FailureMessage: lookup(doc, "$.failure_message"),
	}, nil
}

func (c *Client) CreateRefund(ctx context.Context, chargeID string) (Refund, error) {
	doc, err := c.post(ctx, "stripeapi.refund", "/v1/refunds", formOf(map[string]string{"charge": chargeID}))
	if err != nil {
		return Refund{}, err
	}
	return Refund{ID: lookup(doc, "$.id"), Status: lookup(doc, "$.status")}, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer domain.CustomerData, source string) (Customer, error) {
	form := formOf(map[string]string{
		"name":                 customer.Name,
		"email":                customer.Contact.Email,
		"phone":                customer.Contact.Phone,
		"source":               source,
		"metadata[payflow_id]": customer.ID,
	})

	doc, err := c.post(ctx, "stripeapi.customer", "/v1/customers", form)
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: lookup(doc, "$.id")}, nil
}

func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID string) (Subscription, error) {
	form := formOf(map[string]string{
		"customer":        customerID,
		"items[0][price]": priceID,
	})

	doc, err := c.post(ctx, "stripeapi.subscription", "/v1/subscriptions", form)
	if err != nil {
		return Subscription{}, err
	}
	return Subscription{ID: lookup(doc, "$.id"), Status: lookup(doc, "$.status")}, nil
}
