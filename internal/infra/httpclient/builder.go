package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
)

const formContentType = "application/x-www-form-urlencoded"

// BuildForm builds a form-encoded request. Headers are applied as given;
// Content-Type is only set when the caller did not set it.
func BuildForm(ctx context.Context, method, rawURL string, form url.Values, headers map[string]string) (*http.Request, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: "url",
			Err:  domain.ErrInvalidConfig,
		}
	}

	var body string
	if len(form) > 0 {
		body = form.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, strings.NewReader(body))
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: "url",
			Err:  err,
		}
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", formContentType)
	}

	return req, nil
}
