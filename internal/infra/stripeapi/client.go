// Package stripeapi is a small form-encoded client for a Stripe-compatible HTTP API.
// It covers charges, refunds, customers and subscriptions; nothing else.
package stripeapi

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/httpclient"
)

const DefaultBaseURL = "https://api.stripe.com"

type Client struct {
	baseURL string
	apiKey  string
	exec    *httpclient.Executor
	log     *slog.Logger
	newKey  func() string
}

type Option func(*Client)

func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) {
		if e != nil {
			c.exec = e
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIdempotencyKeys overrides the Idempotency-Key generator.
func WithIdempotencyKeys(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		exec:    httpclient.NewExecutor(),
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		newKey:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasKey reports whether an API key was configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// KeyFingerprint identifies the configured key in logs without exposing it.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(sum[:6])
}

// post sends a form to path and returns the decoded JSON document.
// Transport failures and non-2xx answers become KindRejected errors carrying
// the API's error message when one is present.
func (c *Client) post(ctx context.Context, op, path string, form url.Values) (any, error) {
	if !c.HasKey() {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: "processors.stripe.api_key",
			Err:  fmt.Errorf("STRIPE_API_KEY is not set: %w", domain.ErrInvalidConfig),
		}
	}

	req, err := httpclient.BuildForm(ctx, http.MethodPost, c.baseURL+path, form, map[string]string{
		"Authorization":   "Bearer " + c.apiKey,
		"Idempotency-Key": c.newKey(),
		"Accept":          "application/json",
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.exec.Do(ctx, req)
	c.log.Debug("stripeapi.request",
		"path", path,
		"status", resp.Status,
		"duration_ms", resp.Duration.Milliseconds(),
		"key_fp", c.KeyFingerprint(),
	)
	if err != nil {
		kind := httpclient.Classify(err)
		c.log.Warn("stripeapi.transport.failed", "path", path, "failure", string(kind), "err", err)
		return nil, &domain.OpError{Op: op, Kind: domain.KindRejected, Err: fmt.Errorf("%w: %s: %v", domain.ErrRejected, kind, err)}
	}

	doc, decodeErr := decode(resp.Body)

	if resp.Status < 200 || resp.Status > 299 {
		msg := fmt.Sprintf("http %d", resp.Status)
		if decodeErr == nil {
			if m := lookup(doc, "$.error.message"); m != "" {
				msg = m
			}
		}
		return nil, &domain.OpError{Op: op, Kind: domain.KindRejected, Err: fmt.Errorf("%w: %s", domain.ErrRejected, msg)}
	}
	if decodeErr != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindRejected, Err: fmt.Errorf("%w: invalid response body: %v", domain.ErrRejected, decodeErr)}
	}

	return doc, nil
}
