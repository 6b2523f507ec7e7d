package kbscrape

import (
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// CrawlTarget is the normalized root of one scrape run.
type CrawlTarget struct {
	// RawInput is the URL exactly as supplied by the caller.
	RawInput string

	// BaseURL is the lowercased scheme://host of the input, with the
	// scheme defaulted to https when the input omitted it.
	BaseURL string

	host string
}

// NewCrawlTarget normalizes raw into a CrawlTarget.
// Returns EINVALID if raw is empty or has no usable host.
func NewCrawlTarget(raw string) (*CrawlTarget, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, Errorf(EINVALID, "URL is required")
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Host == "" || u.Hostname() == "" {
		return nil, Errorf(EINVALID, "invalid URL %q: missing host", raw)
	}

	host := strings.ToLower(u.Host)
	return &CrawlTarget{
		RawInput: raw,
		BaseURL:  strings.ToLower(u.Scheme) + "://" + host,
		host:     host,
	}, nil
}

// Host returns the host (and port, if any) every discovered URL must share.
func (t *CrawlTarget) Host() string {
	return t.host
}

// Credentials configures authentication applied uniformly to every outbound
// request of a scrape run, static and rendered alike.
type Credentials struct {
	Username string
	Password string
	Cookies  map[string]string
	Headers  map[string]string
}

// HasBasicAuth reports whether both username and password are set.
func (c *Credentials) HasBasicAuth() bool {
	return c != nil && c.Username != "" && c.Password != ""
}

// BasicAuthHeader returns the Authorization header value for the username
// and password, or an empty string unless both are set.
func (c *Credentials) BasicAuthHeader() string {
	if !c.HasBasicAuth() {
		return ""
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

// CookieHeader renders Cookies as a Cookie header value with keys in sorted
// order. Returns an empty string when no cookies are configured.
func (c *Credentials) CookieHeader() string {
	if c == nil || len(c.Cookies) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.Cookies))
	for name := range c.Cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+c.Cookies[name])
	}
	return strings.Join(parts, "; ")
}
