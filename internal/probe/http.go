// Package probe implements the live-fetch half of the detector's signal
// collection: HTTP(S) response capture and TLS certificate-name
// extraction. Both probes run with certificate verification disabled —
// a live response behind a mismatched certificate is itself a signal,
// not a reason to abort.
package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxBodyCapture  = 5 * 1024 // 5 KiB, per spec
	maxTitleLength  = 100
	userAgentString = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var titleRegex = regexp.MustCompile(`(?i)<title[^>]*>\s*([^<]+)\s*</title>`)

// HTTPResult is one hostname's captured HTTP(S) signal.
type HTTPResult struct {
	Scheme      string
	FinalURL    string
	StatusCode  int
	Headers     map[string]string // lowercase keys, first value only
	Body        string            // truncated to maxBodyCapture
	Title       string            // truncated to maxTitleLength
	ElapsedTime time.Duration
	IsLive      bool
}

// HTTPFetcher fetches a candidate hostname. Implemented by Client. The
// detector does not use it; it depends on its own HTTPProber interface,
// built around Attempt.
type HTTPFetcher interface {
	ProbeHTTP(ctx context.Context, host string) HTTPResult
}

// Client is the default HTTPFetcher, backed by net/http with redirect
// following and certificate verification disabled.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter // optional, shared across a scan
}

// NewClient builds a Client with the given per-request timeout (the
// spec's default is 10s; callers pass the configured value).
func NewClient(timeout time.Duration) *Client {
	return &Client{
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// WithRateLimiter attaches a shared token-bucket limiter that Attempt
// waits on before every request, so HTTP probes draw from the same
// per-service budget as the DNS resolver layer (§4.5).
func (c *Client) WithRateLimiter(limiter *rate.Limiter) *Client {
	c.limiter = limiter
	return c
}

func (c *Client) wait(ctx context.Context) {
	if c.limiter == nil {
		return
	}
	_ = c.limiter.Wait(ctx)
}

// ProbeHTTP attempts http://host then https://host, returning on the
// first attempt that produces any status code at all (2xx/3xx counts as
// a clean short-circuit, but any response — including 4xx/5xx — already
// satisfies is_live per the spec's "any attempt produced a status").
func (c *Client) ProbeHTTP(ctx context.Context, host string) HTTPResult {
	for _, scheme := range []string{"http", "https"} {
		if res, ok := c.Attempt(ctx, scheme, host); ok {
			return res
		}
	}
	return HTTPResult{}
}

// Attempt fetches host over exactly one scheme. Exported so callers that
// need both the http and https status independently (the detector's
// Finding carries both) can request each explicitly rather than relying
// on ProbeHTTP's first-success short-circuit.
func (c *Client) Attempt(ctx context.Context, scheme, host string) (HTTPResult, bool) {
	c.wait(ctx)

	url := fmt.Sprintf("%s://%s", scheme, host)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return HTTPResult{}, false
	}
	req.Header.Set("User-Agent", userAgentString)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HTTPResult{}, false
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))

	headers := make(map[string]string, len(resp.Header))
	for name, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(name)] = vals[0]
		}
	}

	title := ""
	if m := titleRegex.FindSubmatch(body); len(m) > 1 {
		title = truncate(strings.TrimSpace(string(m[1])), maxTitleLength)
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return HTTPResult{
		Scheme:      scheme,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		Headers:     headers,
		Body:        truncate(string(body), maxBodyCapture),
		Title:       title,
		ElapsedTime: elapsed,
		IsLive:      true,
	}, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
