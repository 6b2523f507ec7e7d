package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/kbscrape"
)

// DefaultFetchTimeout is the default timeout for static page requests.
const DefaultFetchTimeout = 15 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Ensure Fetcher implements kbscrape.Fetcher at compile time.
var _ kbscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	credentials *kbscrape.Credentials
	transport   http.RoundTripper
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithCredentials applies creds to every request.
func WithCredentials(creds *kbscrape.Credentials) Option {
	return func(f *Fetcher) {
		f.credentials = creds
	}
}

// WithTransport sets the base round tripper beneath the credential layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Transport: &Transport{
			Base:        f.transport,
			UserAgent:   kbscrape.UserAgent,
			Credentials: f.credentials,
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}
