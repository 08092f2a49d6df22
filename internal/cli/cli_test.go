package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/yamlscenario"
)

// --- looksLikePath ---

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"demo", false},
		{"demo.yaml", false},
		{"./demo.yaml", true},
		{"scenarios/demo.yaml", true},
		{"/abs/path/demo.yaml", true},
	}
	for _, c := range cases {
		if got := looksLikePath(c.input); got != c.want {
			t.Errorf("looksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- hasYAMLExt ---

func TestHasYAMLExt(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"demo.yaml", true},
		{"demo.yml", true},
		{"DEMO.YAML", true},
		{"demo.json", false},
		{"demo", false},
		{"", false},
	}
	for _, c := range cases {
		if got := hasYAMLExt(c.input); got != c.want {
			t.Errorf("hasYAMLExt(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// --- fileExists ---

func TestFileExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "exists.txt")
	if err := os.WriteFile(p, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !fileExists(p) {
		t.Errorf("expected fileExists=true for %s", p)
	}
	if fileExists(filepath.Join(tmp, "not_there.txt")) {
		t.Error("expected fileExists=false for non-existent file")
	}
}

// --- resolveScenarioPath ---

func TestResolveScenarioPath(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "smoke.yml"), []byte("name: nightly\ntransactions: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := &workspaceCtx{
		root:      root,
		cfg:       domain.DefaultConfig(),
		scenarios: yamlscenario.NewLoader(),
	}
	want := filepath.Join(dir, "smoke.yml")

	for _, in := range []string{"smoke", "smoke.yml", "nightly", "scenarios/smoke.yml"} {
		got, err := resolveScenarioPath(ws, in)
		if err != nil {
			t.Fatalf("resolveScenarioPath(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("resolveScenarioPath(%q) = %q, want %q", in, got, want)
		}
	}

	_, err := resolveScenarioPath(ws, "nope")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

// --- printRun ---

func sampleRun() domain.ScenarioRun {
	return domain.ScenarioRun{
		ScenarioName: "mixed",
		Outcomes: []domain.ScenarioOutcome{
			{Name: "ok", Response: domain.PaymentResponse{Success: true, TransactionID: "local-1", Message: "approved"}},
			{Name: "declined", Response: domain.PaymentResponse{Success: false, TransactionID: "ch_2", Message: "card_declined"}},
			{Name: "broken", Err: errors.New("connection refused")},
		},
	}
}

func TestPrintRun_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "pretty"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"[OK] ok", "[DECLINED] declined", "[FAIL] broken", "connection refused", "3 transaction(s), 2 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestPrintRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printRun(&buf, sampleRun(), "json"); err != nil {
		t.Fatal(err)
	}

	var got runJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Failures != 2 || len(got.Outcomes) != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.Outcomes[2].Error == "" || got.Outcomes[2].Response != nil {
		t.Fatalf("errored outcome should carry only an error: %+v", got.Outcomes[2])
	}
}

func TestPrintRun_ChargedThenFailedKeepsTransaction(t *testing.T) {
	run := domain.ScenarioRun{
		ScenarioName: "partial",
		Outcomes: []domain.ScenarioOutcome{{
			Name:     "charged",
			Response: domain.PaymentResponse{Success: true, TransactionID: "local-7", Message: "approved"},
			Err:      errors.New("smtp down"),
		}},
	}

	var pretty bytes.Buffer
	if err := printRun(&pretty, run, "pretty"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[FAIL] charged", "tx: local-7", "smtp down"} {
		if !strings.Contains(pretty.String(), want) {
			t.Errorf("expected %q in output, got:\n%s", want, pretty.String())
		}
	}

	var raw bytes.Buffer
	if err := printRun(&raw, run, "json"); err != nil {
		t.Fatal(err)
	}
	var got runJSON
	if err := json.Unmarshal(raw.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, raw.String())
	}
	o := got.Outcomes[0]
	if o.Error == "" || o.Response == nil || o.Response.TransactionID != "local-7" {
		t.Fatalf("expected both error and response, got %+v", o)
	}
}

func TestFinishResponse(t *testing.T) {
	charged := domain.PaymentResponse{Success: true, TransactionID: "local-7", Message: "approved"}
	failed := errors.New("smtp down")

	cases := []struct {
		name    string
		resp    domain.PaymentResponse
		err     error
		wantOut string
		wantErr bool
	}{
		{"approved", charged, nil, "local-7", false},
		{"charged then failed", charged, failed, "local-7", true},
		{"rejected before charge", domain.PaymentResponse{}, failed, "", true},
		{"declined", domain.PaymentResponse{TransactionID: "ch_2", Message: "card_declined"}, nil, "DECLINED", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)

			err := finishResponse(cmd, tc.resp, tc.err, "pretty")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("expected the original error back, got %v", err)
			}
			if tc.wantOut == "" && out.Len() != 0 {
				t.Fatalf("expected no output, got:\n%s", out.String())
			}
			if !strings.Contains(out.String(), tc.wantOut) {
				t.Fatalf("expected %q in output, got:\n%s", tc.wantOut, out.String())
			}
		})
	}
}

func TestCheckFormat(t *testing.T) {
	if err := checkFormat("xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"demo", "pay", "refund", "subscribe", "run", "scenarios", "validate", "init", "tui", "version", "history"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestPayCmd_Flags(t *testing.T) {
	cmd := payCmd(&rootFlags{})
	for _, flag := range []string{"name", "id", "email", "phone", "amount", "currency", "type", "source"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on pay command", flag)
		}
	}
	if got := cmd.Flags().Lookup("type").DefValue; got != "card" {
		t.Errorf("pay should default to card, got %q", got)
	}
	if got := subscribeCmd(&rootFlags{}).Flags().Lookup("type").DefValue; got != "recurring" {
		t.Errorf("subscribe should default to recurring, got %q", got)
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag on init command")
	}
	if cmd.Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- end to end, no network ---

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if _, _, err := execute(t, "init", "--path", root, "-w", root); err != nil {
		t.Fatalf("init: %v", err)
	}
	return root
}

func TestRunMixedScenario(t *testing.T) {
	root := initWorkspace(t)

	out, notices, err := execute(t, "run", "mixed", "-w", root, "--format", "json")
	if err == nil {
		t.Fatal("expected an error because one transaction has no customer id")
	}

	var got runJSON
	if jerr := json.Unmarshal([]byte(out), &got); jerr != nil {
		t.Fatalf("invalid json: %v\n%s", jerr, out)
	}
	if len(got.Outcomes) != 3 || got.Failures != 1 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if r := got.Outcomes[0].Response; r == nil || !strings.HasPrefix(r.TransactionID, "local-") {
		t.Errorf("first transaction should go to the local processor: %+v", got.Outcomes[0])
	}
	if r := got.Outcomes[1].Response; r == nil || !strings.HasPrefix(r.TransactionID, "offline-") {
		t.Errorf("second transaction should go offline: %+v", got.Outcomes[1])
	}
	if !strings.Contains(got.Outcomes[2].Error, "customer identifier is required") {
		t.Errorf("third transaction should fail validation: %+v", got.Outcomes[2])
	}

	if strings.Count(notices, "[email]") != 2 {
		t.Errorf("expected two email notices, got:\n%s", notices)
	}

	trace, rerr := os.ReadFile(filepath.Join(root, ".payflow", "transactions.log"))
	if rerr != nil {
		t.Fatalf("read trace: %v", rerr)
	}
	if n := strings.Count(string(trace), "\n"); n != 2 {
		t.Errorf("expected 2 trace lines, got %d:\n%s", n, trace)
	}
}

func TestPayOffline(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := execute(t, "pay", "-w", root,
		"--name", "Jane", "--id", "cus_9", "--email", "jane@example.com",
		"--amount", "12.50", "--currency", "eur", "--type", "offline",
	)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if !strings.Contains(out, "APPROVED") || !strings.Contains(out, "offline-") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPay_PhoneOnlyCustomerRejectedForEmailChannel(t *testing.T) {
	root := initWorkspace(t)

	out, notices, err := execute(t, "pay", "-w", root,
		"--id", "cus_1", "--phone", "+15550001111",
		"--amount", "100", "--currency", "MXN",
	)
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if out != "" || strings.Contains(notices, "[email]") {
		t.Fatalf("nothing should be charged or sent, out=%q notices=%q", out, notices)
	}
}

func TestPay_InvalidAmount(t *testing.T) {
	root := initWorkspace(t)

	_, _, err := execute(t, "pay", "-w", root, "--id", "cus_9", "--email", "jane@example.com", "--amount", "ten")
	if !domain.IsKind(err, domain.KindInvalidData) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestRefund_RequiresTransaction(t *testing.T) {
	root := initWorkspace(t)

	_, _, err := execute(t, "refund", "-w", root, "--id", "cus_9", "--email", "jane@example.com", "--amount", "5", "--type", "local", "--currency", "MXN")
	if !domain.IsKind(err, domain.KindInvalidData) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestValidate_ReportsBadScenario(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := execute(t, "validate", "-w", root)
	if err == nil {
		t.Fatal("expected validate to fail on the empty customer id")
	}
	if !strings.Contains(out, "[OK] demo") || !strings.Contains(out, "[FAIL] mixed / missing id is rejected") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestScenariosList(t *testing.T) {
	root := initWorkspace(t)

	out, _, err := execute(t, "scenarios", "list", "-w", root)
	if err != nil {
		t.Fatalf("scenarios list: %v", err)
	}
	if !strings.Contains(out, "- demo") || !strings.Contains(out, "- mixed") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "-w", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "payflow ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestDemo_WithoutStripeKeyHintsAtConfig(t *testing.T) {
	root := initWorkspace(t)
	t.Setenv("STRIPE_API_KEY", "")

	_, _, err := execute(t, "-w", root)
	if err == nil {
		t.Fatal("expected the demo to fail without a Stripe key")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestHistory_ListsSQLTrace(t *testing.T) {
	root := initWorkspace(t)
	t.Setenv("PAYFLOW_LOG_SINK", "sql")
	t.Setenv("PAYFLOW_LOG_DRIVER", "sqlite3")
	t.Setenv("PAYFLOW_LOG_DSN", filepath.Join(root, "trace.db"))

	for _, amount := range []string{"10", "20"} {
		if _, _, err := execute(t, "pay", "-w", root,
			"--id", "cus_9", "--email", "jane@example.com",
			"--amount", amount, "--currency", "EUR", "--type", "offline",
		); err != nil {
			t.Fatalf("pay %s: %v", amount, err)
		}
	}

	out, _, err := execute(t, "history", "-w", root, "--limit", "1", "--format", "json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var recs []domain.TransactionRecord
	if jerr := json.Unmarshal([]byte(out), &recs); jerr != nil {
		t.Fatalf("invalid json: %v\n%s", jerr, out)
	}
	if len(recs) != 1 || recs[0].Amount != "20.00" || !strings.HasPrefix(recs[0].TransactionID, "offline-") {
		t.Fatalf("expected only the newest payment, got %+v", recs)
	}

	pretty, _, err := execute(t, "history", "-w", root)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if strings.Count(pretty, "customer=cus_9") != 2 {
		t.Fatalf("expected two rows, got:\n%s", pretty)
	}
}

func TestHistory_RequiresSQLSink(t *testing.T) {
	root := initWorkspace(t)

	_, _, err := execute(t, "history", "-w", root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	var op *domain.OpError
	if !errors.As(err, &op) || op.Path != "log.sink" {
		t.Fatalf("expected log.sink path, got %v", err)
	}
}
