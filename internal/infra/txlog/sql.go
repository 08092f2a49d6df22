package txlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS transactions (
	at             TEXT NOT NULL,
	operation      TEXT NOT NULL,
	customer_id    TEXT NOT NULL,
	customer_name  TEXT NOT NULL,
	email          TEXT NOT NULL,
	phone          TEXT NOT NULL,
	amount         TEXT NOT NULL,
	currency       TEXT NOT NULL,
	payment_type   TEXT NOT NULL,
	processor      TEXT NOT NULL,
	success        BOOLEAN NOT NULL,
	transaction_id TEXT NOT NULL,
	message        TEXT NOT NULL
)`

// atLayout is fixed-width so the text column sorts chronologically.
const atLayout = "2006-01-02T15:04:05.000000000Z"

const insertStmt = `INSERT INTO transactions
	(at, operation, customer_id, customer_name, email, phone, amount, currency, payment_type, processor, success, transaction_id, message)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// SQL stores records in a "transactions" table. The driver must already be
// registered (postgres or sqlite3).
type SQL struct {
	db   *sql.DB
	mask bool
}

// OpenSQL opens the database and creates the table when missing.
func OpenSQL(ctx context.Context, driver, dsn string, mask bool) (*SQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "txlog.sql.open",
			Kind: domain.KindInvalidConfig,
			Path: "log.driver",
			Err:  fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err),
		}
	}
	if driver == "sqlite3" {
		// One connection keeps ":memory:" databases and file locks consistent.
		db.SetMaxOpenConns(1)
	}

	s, err := NewSQL(ctx, db, mask)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQL wraps an open handle and creates the table when missing.
func NewSQL(ctx context.Context, db *sql.DB, mask bool) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, &domain.OpError{Op: "txlog.sql.migrate", Kind: domain.KindExecution, Err: err}
	}
	return &SQL{db: db, mask: mask}, nil
}

func (s *SQL) Record(ctx context.Context, rec domain.TransactionRecord) error {
	if s.mask {
		rec = maskRecord(rec)
	}

	_, err := s.db.ExecContext(ctx, insertStmt,
		rec.At.UTC().Format(atLayout),
		string(rec.Operation),
		rec.CustomerID,
		rec.CustomerName,
		rec.Email,
		rec.Phone,
		rec.Amount,
		rec.Currency,
		string(rec.Type),
		rec.Processor,
		rec.Success,
		rec.TransactionID,
		rec.Message,
	)
	if err != nil {
		return &domain.OpError{Op: "txlog.sql.insert", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *SQL) Recent(ctx context.Context, limit int) ([]domain.TransactionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT at, operation, customer_id, customer_name, email, phone, amount,
		currency, payment_type, processor, success, transaction_id, message
		FROM transactions ORDER BY at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, &domain.OpError{Op: "txlog.sql.query", Kind: domain.KindExecution, Err: err}
	}
	defer rows.Close()

	var out []domain.TransactionRecord
	for rows.Next() {
		var (
			rec   domain.TransactionRecord
			at    string
			op    string
			ptype string
		)
		if err := rows.Scan(&at, &op, &rec.CustomerID, &rec.CustomerName, &rec.Email, &rec.Phone, &rec.Amount,
			&rec.Currency, &ptype, &rec.Processor, &rec.Success, &rec.TransactionID, &rec.Message); err != nil {
			return nil, &domain.OpError{Op: "txlog.sql.scan", Kind: domain.KindExecution, Err: err}
		}
		if rec.At, err = time.Parse(atLayout, at); err != nil {
			return nil, &domain.OpError{Op: "txlog.sql.scan", Kind: domain.KindExecution, Path: "at", Err: err}
		}
		rec.Operation = domain.Operation(op)
		rec.Type = domain.PaymentType(ptype)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.OpError{Op: "txlog.sql.scan", Kind: domain.KindExecution, Err: err}
	}
	return out, nil
}

func (s *SQL) Close() error { return s.db.Close() }

var _ ports.TransactionLogger = (*SQL)(nil)
