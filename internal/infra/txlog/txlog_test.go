package txlog

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aalvaropc/payflow/internal/domain"
)

func sampleRecord(at time.Time, id string) domain.TransactionRecord {
	return domain.TransactionRecord{
		At:            at,
		Operation:     domain.OpCharge,
		CustomerID:    "cus_1",
		CustomerName:  "Jane",
		Email:         "jane@example.com",
		Phone:         "+1 (555) 010-1234",
		Amount:        "100.00",
		Currency:      "USD",
		Type:          domain.PaymentCard,
		Processor:     "stripe",
		Success:       true,
		TransactionID: id,
		Message:       "charge succeeded",
	}
}

var t0 = time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)

func TestMask(t *testing.T) {
	tests := []struct{ in, email, phone string }{
		{"jane@example.com", "j****@example.com", ""},
		{"nope", "****", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := maskEmail(tt.in); got != tt.email {
			t.Fatalf("maskEmail(%q) = %q, want %q", tt.in, got, tt.email)
		}
	}
	if got := maskPhone("+1 (555) 010-1234"); got != "****1234" {
		t.Fatalf("maskPhone = %q", got)
	}
	if got := maskPhone("123"); got != "****" {
		t.Fatalf("maskPhone short = %q", got)
	}

	rec := sampleRecord(t0, "ch_1")
	_ = maskRecord(rec)
	if rec.Email != "jane@example.com" {
		t.Fatalf("maskRecord must not mutate the input")
	}
}

func TestText_Record(t *testing.T) {
	var sb strings.Builder
	l := NewTextWriter(&sb, true)

	if err := l.Record(context.Background(), sampleRecord(t0, "ch_1")); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	line := sb.String()
	for _, want := range []string{"2026-02-03T10:11:12Z", "charge", "stripe", "customer=cus_1", "email=j****@example.com", "amount=100.00 USD", "status=ok", "tx=ch_1"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Count(line, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", line)
	}
}

func TestText_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".payflow", "transactions.log")

	for i := 0; i < 2; i++ {
		l, err := NewText(path, false)
		if err != nil {
			t.Fatalf("NewText error: %v", err)
		}
		if err := l.Record(context.Background(), sampleRecord(t0, "ch_1")); err != nil {
			t.Fatalf("Record error: %v", err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("Close error: %v", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := strings.Count(string(b), "\n"); n != 2 {
		t.Fatalf("expected 2 lines, got %d", n)
	}
}

func TestJSONL_Record(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	l, err := NewJSONL(path, true)
	if err != nil {
		t.Fatalf("NewJSONL error: %v", err)
	}
	defer l.Close()

	for _, id := range []string{"ch_1", "ch_2"} {
		if err := l.Record(context.Background(), sampleRecord(t0, id)); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []domain.TransactionRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec domain.TransactionRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		got = append(got, rec)
	}
	if len(got) != 2 || got[1].TransactionID != "ch_2" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if got[0].Email != "j****@example.com" || got[0].Phone != "****1234" {
		t.Fatalf("expected masked contact, got %+v", got[0])
	}
}

func TestSQL_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQL(ctx, "sqlite3", ":memory:", false)
	if err != nil {
		t.Fatalf("OpenSQL error: %v", err)
	}
	defer s.Close()

	if err := s.Record(ctx, sampleRecord(t0, "ch_1")); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := s.Record(ctx, sampleRecord(t0.Add(time.Second), "ch_2")); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	recs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recs))
	}
	if recs[0].TransactionID != "ch_2" || !recs[0].At.Equal(t0.Add(time.Second)) {
		t.Fatalf("expected newest first, got %+v", recs[0])
	}
	if !recs[1].Success || recs[1].Operation != domain.OpCharge || recs[1].Type != domain.PaymentCard {
		t.Fatalf("unexpected row: %+v", recs[1])
	}
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	_, err := OpenSQL(context.Background(), "nosuchdriver", "x", false)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestSQL_RecentRejectsMalformedTimestamp(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQL(ctx, "sqlite3", ":memory:", false)
	if err != nil {
		t.Fatalf("OpenSQL error: %v", err)
	}
	defer s.Close()

	if _, err := s.db.ExecContext(ctx, insertStmt,
		"yesterday", "charge", "cus_1", "Jane", "", "", "1.00", "USD", "card", "local", true, "local-1", "ok",
	); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = s.Recent(ctx, 10)
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got %v", err)
	}
}

func TestFileSinks_RecordDespiteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	if err := NewTextWriter(&sb, false).Record(ctx, sampleRecord(t0, "ch_1")); err != nil {
		t.Fatalf("text Record error: %v", err)
	}
	if !strings.Contains(sb.String(), "tx=ch_1") {
		t.Fatalf("expected a text line, got %q", sb.String())
	}

	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	l, err := NewJSONL(path, false)
	if err != nil {
		t.Fatalf("NewJSONL error: %v", err)
	}
	if err := l.Record(ctx, sampleRecord(t0, "ch_1")); err != nil {
		t.Fatalf("jsonl Record error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Count(string(b), "\n") != 1 {
		t.Fatalf("expected one jsonl line, got %q", b)
	}
}
