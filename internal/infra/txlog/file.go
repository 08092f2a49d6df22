// Package txlog persists one trace record per payment service call.
// Sinks: plain text lines, JSON lines, or a SQL table. None of them rotate.
package txlog

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/payflow/internal/domain"
)

func openAppend(op, path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: path, Err: err}
	}
	return f, nil
}
