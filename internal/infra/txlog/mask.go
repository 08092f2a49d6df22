package txlog

import (
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
)

const maskValue = "****"

// maskRecord hides most of the contact details. The record is a value, so the
// caller's copy is untouched.
func maskRecord(rec domain.TransactionRecord) domain.TransactionRecord {
	rec.Email = maskEmail(rec.Email)
	rec.Phone = maskPhone(rec.Phone)
	return rec
}

// maskEmail keeps the first rune of the local part and the domain.
func maskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return maskValue
	}
	local := []rune(email[:at])
	return string(local[0]) + maskValue + email[at:]
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return maskValue
	}
	return maskValue + string(digits[len(digits)-4:])
}
