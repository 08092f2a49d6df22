package domain

import "strings"

// NotificationChannel identifies how a customer is informed about an outcome.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// ContactInfo holds the ways a customer can be reached. At least one is required.
type ContactInfo struct {
	Email string
	Phone string
}

// HasEmail reports whether an email address is present.
func (c ContactInfo) HasEmail() bool { return strings.TrimSpace(c.Email) != "" }

// HasPhone reports whether a phone number is present.
func (c ContactInfo) HasPhone() bool { return strings.TrimSpace(c.Phone) != "" }

// PreferredChannel returns email when available, otherwise sms.
func (c ContactInfo) PreferredChannel() NotificationChannel {
	if c.HasEmail() {
		return ChannelEmail
	}
	return ChannelSMS
}

// CustomerData identifies the payer. ID must be non-empty for a transaction to
// pass validation; that check lives in the validator chain so it can be observed.
type CustomerData struct {
	Name    string
	ID      string
	Contact ContactInfo
}

// NewCustomerData trims its inputs and rejects a contact with no channel.
func NewCustomerData(name, id string, contact ContactInfo) (CustomerData, error) {
	c := CustomerData{
		Name: strings.TrimSpace(name),
		ID:   strings.TrimSpace(id),
		Contact: ContactInfo{
			Email: strings.TrimSpace(contact.Email),
			Phone: strings.TrimSpace(contact.Phone),
		},
	}
	if !c.Contact.HasEmail() && !c.Contact.HasPhone() {
		return CustomerData{}, invalidData("customer.new", "contact", "email or phone is required")
	}
	return c, nil
}
