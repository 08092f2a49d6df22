package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/payflow/internal/domain"
)

type responseJSON struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message,omitempty"`
}

type outcomeJSON struct {
	Name     string        `json:"name"`
	Response *responseJSON `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type runJSON struct {
	Scenario string        `json:"scenario"`
	Path     string        `json:"path,omitempty"`
	Failures int           `json:"failures"`
	Outcomes []outcomeJSON `json:"outcomes"`
}

func toResponseJSON(r domain.PaymentResponse) *responseJSON {
	return &responseJSON{Success: r.Success, TransactionID: r.TransactionID, Message: r.Message}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printResponse(w io.Writer, resp domain.PaymentResponse, format string) error {
	if format == "json" {
		return writeJSON(w, toResponseJSON(resp))
	}

	status := "APPROVED"
	if !resp.Success {
		status = "DECLINED"
	}
	fmt.Fprintf(w, "Status:      %s\n", status)
	fmt.Fprintf(w, "Transaction: %s\n", resp.TransactionID)
	if resp.Message != "" {
		fmt.Fprintf(w, "Message:     %s\n", resp.Message)
	}
	return nil
}

func printRun(w io.Writer, run domain.ScenarioRun, format string) error {
	if format == "json" {
		out := runJSON{
			Scenario: run.ScenarioName,
			Path:     run.ScenarioPath,
			Failures: run.Failures(),
			Outcomes: make([]outcomeJSON, 0, len(run.Outcomes)),
		}
		for _, o := range run.Outcomes {
			oj := outcomeJSON{Name: o.Name}
			if o.Err != nil {
				oj.Error = o.Err.Error()
			}
			if o.Err == nil || o.Response.TransactionID != "" {
				oj.Response = toResponseJSON(o.Response)
			}
			out.Outcomes = append(out.Outcomes, oj)
		}
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "Scenario: %s\n", run.ScenarioName)
	if run.ScenarioPath != "" {
		fmt.Fprintf(w, "Path:     %s\n", run.ScenarioPath)
	}
	fmt.Fprintln(w)

	for _, o := range run.Outcomes {
		switch {
		case o.Err != nil && o.Response.TransactionID != "":
			fmt.Fprintf(w, "- [FAIL] %s\n  tx: %s  %s\n  error: %v\n", o.Name, o.Response.TransactionID, o.Response.Message, o.Err)
		case o.Err != nil:
			fmt.Fprintf(w, "- [FAIL] %s\n  error: %v\n", o.Name, o.Err)
		case !o.Response.Success:
			fmt.Fprintf(w, "- [DECLINED] %s\n  tx: %s  %s\n", o.Name, o.Response.TransactionID, o.Response.Message)
		default:
			fmt.Fprintf(w, "- [OK] %s\n  tx: %s  %s\n", o.Name, o.Response.TransactionID, o.Response.Message)
		}
	}

	fmt.Fprintf(w, "\n%d transaction(s), %d failed\n", len(run.Outcomes), run.Failures())
	return nil
}
