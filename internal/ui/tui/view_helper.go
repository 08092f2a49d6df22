package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/payflow/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func outcomeStatus(o domain.ScenarioOutcome) string {
	switch {
	case o.Err != nil:
		return "FAIL"
	case !o.Response.Success:
		return "DECLINED"
	default:
		return "OK"
	}
}

func renderRun(run domain.ScenarioRun, width int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scenario: %s\n", run.ScenarioName))
	if run.ScenarioPath != "" {
		b.WriteString(fmt.Sprintf("Path: %s\n", run.ScenarioPath))
	}
	b.WriteString("\n")

	if width <= 0 {
		width = 80
	}
	for _, o := range run.Outcomes {
		b.WriteString("  [")
		b.WriteString(outcomeStatus(o))
		b.WriteString("] ")
		b.WriteString(o.Name)
		b.WriteString("\n      ")
		if o.Err != nil {
			b.WriteString(clampString(UserMessage(o.Err), width-8))
		} else {
			line := o.Response.TransactionID
			if o.Response.Message != "" {
				line += "  " + o.Response.Message
			}
			b.WriteString(clampString(line, width-8))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%d transaction(s), %d failed\n", len(run.Outcomes), run.Failures()))
	return b.String()
}

func renderNotices(notices string, maxLines int) string {
	notices = strings.TrimSpace(notices)
	if notices == "" {
		return "(none)"
	}
	lines := strings.Split(notices, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		extra := len(lines) - maxLines
		lines = append(lines[:maxLines], fmt.Sprintf("… %d more", extra))
	}
	return strings.Join(lines, "\n")
}
