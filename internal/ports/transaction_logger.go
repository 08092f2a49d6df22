package ports

import (
	"context"

	"github.com/aalvaropc/payflow/internal/domain"
)

// TransactionLogger appends one trace record per service call.
type TransactionLogger interface {
	Record(ctx context.Context, rec domain.TransactionRecord) error
}
