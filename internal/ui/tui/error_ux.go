package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// UserMessage turns an error into one short line for humans. Details go to the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.Contains(oe.Op, "workspacefinder.findroot"):
				return "Workspace not found (run `payflow init`)"
			case strings.Contains(oe.Op, "scenario"):
				return "Scenario not found"
			case strings.HasPrefix(oe.Op, "config."):
				return "Config file not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			if errors.Is(err, domain.ErrUnsupportedPayment) {
				return "No processor handles this payment type and currency"
			}
			if errors.Is(err, domain.ErrMissingDependency) {
				return "Payment service is incomplete (see logs)"
			}
			if strings.HasSuffix(oe.Path, "api_key") {
				return "Stripe is not configured: set STRIPE_API_KEY"
			}
			if strings.HasSuffix(oe.Path, "recurring_price_id") {
				return "Recurring payments need STRIPE_RECURRING_PRICE_ID"
			}

			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if strings.TrimSpace(oe.Path) != "" {
				return "Invalid config: " + oe.Path
			}
			return "Invalid config"

		case domain.KindValidation:
			if oe.Path != "" {
				return "Customer rejected: invalid " + oe.Path
			}
			return "Customer rejected"

		case domain.KindInvalidData:
			if oe.Path != "" {
				return "Invalid input: " + oe.Path
			}
			return "Invalid input"

		case domain.KindRejected:
			return "Processor rejected the payment"

		case domain.KindUnsupported:
			return "Not supported by the selected processor"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
