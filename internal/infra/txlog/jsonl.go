package txlog

import (
	"context"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// JSONL appends one JSON document per line.
type JSONL struct {
	mu   sync.Mutex
	path string
	file *os.File
	mask bool
}

func NewJSONL(path string, mask bool) (*JSONL, error) {
	f, err := openAppend("txlog.jsonl.open", path)
	if err != nil {
		return nil, err
	}
	return &JSONL{path: path, file: f, mask: mask}, nil
}

func (s *JSONL) Record(_ context.Context, rec domain.TransactionRecord) error {
	if s.mask {
		rec = maskRecord(rec)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return &domain.OpError{Op: "txlog.jsonl.marshal", Kind: domain.KindExecution, Path: s.path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return &domain.OpError{Op: "txlog.jsonl.write", Kind: domain.KindExecution, Path: s.path, Err: err}
	}
	return nil
}

func (s *JSONL) Close() error { return s.file.Close() }

var _ ports.TransactionLogger = (*JSONL)(nil)
