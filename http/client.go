// Package http provides net/http implementations of the kbscrape fetch,
// sitemap and robots services. Every outbound request carries the scraper's
// User-Agent and the run's credentials.
package http

import (
	"net/http"
	"time"

	"github.com/fwojciec/kbscrape"
)

// Transport decorates requests with a User-Agent and credentials before
// handing them to Base.
type Transport struct {
	// Base is the underlying round tripper. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// UserAgent is set on requests that don't already carry one.
	UserAgent string

	// Credentials are applied to every request. May be nil.
	Credentials *kbscrape.Credentials
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.UserAgent)
	}

	if c := t.Credentials; c != nil {
		for name, value := range c.Headers {
			r.Header.Set(name, value)
		}
		if c.HasBasicAuth() {
			r.SetBasicAuth(c.Username, c.Password)
		}
		if cookie := c.CookieHeader(); cookie != "" {
			r.Header.Set("Cookie", cookie)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}

// NewClient returns a client whose transport applies the scraper's
// User-Agent and creds to every request. A zero timeout means none.
func NewClient(creds *kbscrape.Credentials, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			UserAgent:   kbscrape.UserAgent,
			Credentials: creds,
		},
	}
}
