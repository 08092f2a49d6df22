package notify

import (
	"context"
	"fmt"

	"github.com/aalvaropc/payflow/internal/app/template"
	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

var (
	emailSubject = template.Must(template.Parse("Payment {{status}}"))
	emailBody    = template.Must(template.Parse("Hello {{name}}, your payment {{transaction_id}} was {{status}}. {{message}}"))
	smsBody      = template.Must(template.Parse("Payment {{status}} ({{transaction_id}}). {{message}}"))
)

// Email notifies the customer's email address.
type Email struct {
	from   string
	sender Sender
}

func NewEmail(from string, sender Sender) *Email {
	return &Email{from: from, sender: sender}
}

func (n *Email) Notify(ctx context.Context, customer domain.CustomerData, resp domain.PaymentResponse) error {
	if !customer.Contact.HasEmail() {
		return missingChannel("notify.email", "contact.email", customer.ID)
	}

	vars := messageVars(customer, resp)
	subject, err := emailSubject.Execute(vars)
	if err != nil {
		return err
	}
	body, err := emailBody.Execute(vars)
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		Channel: domain.ChannelEmail,
		From:    n.from,
		To:      customer.Contact.Email,
		Subject: subject,
		Body:    body,
	})
}

// SMS notifies the customer's phone number.
type SMS struct {
	from   string
	sender Sender
}

func NewSMS(from string, sender Sender) *SMS {
	return &SMS{from: from, sender: sender}
}

func (n *SMS) Notify(ctx context.Context, customer domain.CustomerData, resp domain.PaymentResponse) error {
	if !customer.Contact.HasPhone() {
		return missingChannel("notify.sms", "contact.phone", customer.ID)
	}

	body, err := smsBody.Execute(messageVars(customer, resp))
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, Message{
		Channel: domain.ChannelSMS,
		From:    n.from,
		To:      customer.Contact.Phone,
		Body:    body,
	})
}

func messageVars(customer domain.CustomerData, resp domain.PaymentResponse) map[string]string {
	status := "approved"
	if !resp.Success {
		status = "declined"
	}
	name := customer.Name
	if name == "" {
		name = customer.ID
	}
	return map[string]string{
		"name":           name,
		"status":         status,
		"transaction_id": resp.TransactionID,
		"message":        resp.Message,
	}
}

func missingChannel(op, path, customerID string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidData,
		Path: path,
		Err:  fmt.Errorf("customer %s has no %s: %w", customerID, path, domain.ErrInvalidData),
	}
}

var (
	_ ports.Notifier = (*Email)(nil)
	_ ports.Notifier = (*SMS)(nil)
	_ Sender         = (*WriterSender)(nil)
)
