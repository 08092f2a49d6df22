package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// CustomerID rejects customers without an identifier.
type CustomerID struct {
	link
}

func NewCustomerID() *CustomerID { return &CustomerID{} }

func (h *CustomerID) SetNext(next ports.CustomerHandler) ports.CustomerHandler {
	h.next = next
	return next
}

func (h *CustomerID) Handle(customer domain.CustomerData) error {
	if strings.TrimSpace(customer.ID) == "" {
		return failure("validate.customer_id", "id", "customer identifier is required")
	}
	return h.forward(customer)
}

// Contact requires at least one channel and a parseable email when one is given.
type Contact struct {
	link
}

func NewContact() *Contact { return &Contact{} }

func (h *Contact) SetNext(next ports.CustomerHandler) ports.CustomerHandler {
	h.next = next
	return next
}

func (h *Contact) Handle(customer domain.CustomerData) error {
	c := customer.Contact
	if !c.HasEmail() && !c.HasPhone() {
		return failure("validate.contact", "contact", "email or phone is required")
	}
	if c.HasEmail() {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return failure("validate.contact", "contact.email", fmt.Sprintf("invalid email %q", c.Email))
		}
	}
	return h.forward(customer)
}

// Reachable requires the contact channel the configured notifier delivers to.
type Reachable struct {
	link
	channel domain.NotificationChannel
}

func NewReachable(channel domain.NotificationChannel) *Reachable {
	return &Reachable{channel: channel}
}

func (h *Reachable) SetNext(next ports.CustomerHandler) ports.CustomerHandler {
	h.next = next
	return next
}

func (h *Reachable) Handle(customer domain.CustomerData) error {
	c := customer.Contact
	switch h.channel {
	case domain.ChannelSMS:
		if !c.HasPhone() {
			return failure("validate.reachable", "contact.phone", "sms notifications need a phone number")
		}
	default:
		if !c.HasEmail() {
			return failure("validate.reachable", "contact.email", "email notifications need an email address")
		}
	}
	return h.forward(customer)
}

func failure(op, field, msg string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindValidation,
		Path: field,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrValidation),
	}
}

var (
	_ ports.CustomerHandler = (*CustomerID)(nil)
	_ ports.CustomerHandler = (*Contact)(nil)
	_ ports.CustomerHandler = (*Reachable)(nil)
)
