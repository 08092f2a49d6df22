package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/aalvaropc/payflow/internal/buildinfo"
)

// Config shapes the client used for remote processor APIs.
type Config struct {
	// Timeout bounds the whole exchange, body included. A shorter context
	// deadline still wins.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int

	// UserAgent is sent unless the request already sets one.
	UserAgent string
}

// DefaultConfig is tuned for a single remote payment API: few hosts, short calls.
func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      8 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
		UserAgent:           "payflow/" + buildinfo.Version,
	}
}

// WithRequestTimeout returns cfg with Timeout replaced when d is positive.
func (cfg Config) WithRequestTimeout(d time.Duration) Config {
	if d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: cfg.KeepAlive}

	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	if cfg.UserAgent != "" {
		rt = userAgent{next: rt, value: cfg.UserAgent}
	}

	return &http.Client{Transport: rt, Timeout: cfg.Timeout}
}

type userAgent struct {
	next  http.RoundTripper
	value string
}

func (u userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", u.value)
	return u.next.RoundTrip(clone)
}
