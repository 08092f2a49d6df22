package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrInvalidData        = errors.New("invalid data")
	ErrValidation         = errors.New("validation failed")
	ErrRejected           = errors.New("payment rejected")
	ErrUnsupportedPayment = errors.New("unsupported payment")
	ErrUnsupported        = errors.New("operation not supported")
	ErrMissingDependency  = errors.New("missing dependency")
	ErrExecution          = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindInvalidData   ErrorKind = "invalid_data"
	KindValidation    ErrorKind = "validation"
	KindRejected      ErrorKind = "rejected"
	KindUnsupported   ErrorKind = "unsupported"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path or field
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func invalidData(op, field, msg string) error {
	return &OpError{
		Op:   op,
		Kind: KindInvalidData,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidData),
	}
}
