package httpclient

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

// FailureKind is a coarse reason a request never got an HTTP answer.
type FailureKind string

const (
	FailureUnknown FailureKind = "unknown"
	FailureTimeout FailureKind = "timeout"
	FailureDNS     FailureKind = "dns"
	FailureConn    FailureKind = "connection"
)

// Classify inspects a transport error. *url.Error and *net.OpError unwrap
// to their cause so errors.As finds it.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureDNS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailureTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return FailureConn
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureConn
	}

	return FailureUnknown
}
