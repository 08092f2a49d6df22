package txlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// Text writes a human-readable line per record.
type Text struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
	mask bool
}

// NewText appends to the file at path, creating parent directories.
func NewText(path string, mask bool) (*Text, error) {
	f, err := openAppend("txlog.text.open", path)
	if err != nil {
		return nil, err
	}
	return &Text{w: f, file: f, mask: mask}, nil
}

// NewTextWriter writes to w; Close is a no-op.
func NewTextWriter(w io.Writer, mask bool) *Text {
	return &Text{w: w, mask: mask}
}

func (t *Text) Record(_ context.Context, rec domain.TransactionRecord) error {
	if t.mask {
		rec = maskRecord(rec)
	}

	status := "ok"
	if !rec.Success {
		status = "failed"
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprintf(t.w, "%s %-9s %-7s customer=%s email=%s phone=%s amount=%s %s type=%s status=%s tx=%s msg=%q\n",
		rec.At.Format(time.RFC3339),
		rec.Operation,
		rec.Processor,
		rec.CustomerID,
		orDash(rec.Email),
		orDash(rec.Phone),
		rec.Amount,
		rec.Currency,
		rec.Type,
		status,
		orDash(rec.TransactionID),
		rec.Message,
	)
	if err != nil {
		return &domain.OpError{Op: "txlog.text.write", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

func (t *Text) Close() error {
	if t.file == nil {
		return nil
	}
	return t.file.Close()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var _ ports.TransactionLogger = (*Text)(nil)
