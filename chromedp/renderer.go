// Package chromedp provides a Renderer driven by chromedp, an alternative to
// the go-rod renderer for environments where chromedp's allocator fits better.
package chromedp

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/kbscrape"
)

var _ kbscrape.Renderer = (*Renderer)(nil)

// Render defaults.
const (
	DefaultNavigateTimeout = 30 * time.Second
	DefaultBodyTimeout     = 5 * time.Second
	DefaultSettleTime      = 500 * time.Millisecond
)

// Renderer retrieves rendered HTML with a headless Chrome started per call.
type Renderer struct {
	creds           *kbscrape.Credentials
	userAgent       string
	navigateTimeout time.Duration
	bodyTimeout     time.Duration
	settle          time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCredentials applies basic auth, cookies, and headers to rendered pages.
func WithCredentials(creds *kbscrape.Credentials) Option {
	return func(r *Renderer) {
		r.creds = creds
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithNavigateTimeout bounds navigation up to the page's load event.
func WithNavigateTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.navigateTimeout = d
	}
}

// WithBodyTimeout bounds the wait for the body element after navigation.
func WithBodyTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.bodyTimeout = d
	}
}

// NewRenderer creates a new Renderer. No browser is started until Render.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		userAgent:       kbscrape.UserAgent,
		navigateTimeout: DefaultNavigateTimeout,
		bodyTimeout:     DefaultBodyTimeout,
		settle:          DefaultSettleTime,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render starts a browser, loads the URL, waits for the body and a short
// settle period, and returns the document's outer HTML. The browser is shut
// down before Render returns.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent(r.userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// Start the browser on browserCtx itself; a first Run on a timeout
	// context would tie the browser's lifetime to that timeout.
	if err := chromedp.Run(browserCtx); err != nil {
		return "", r.renderError(ctx, url, "start browser", err)
	}
	if err := r.run(browserCtx, r.navigateTimeout, append(r.credentialActions(url), chromedp.Navigate(url))...); err != nil {
		return "", r.renderError(ctx, url, "navigate", err)
	}
	if err := r.run(browserCtx, r.bodyTimeout, chromedp.WaitReady("body")); err != nil {
		return "", r.renderError(ctx, url, "wait for body", err)
	}

	var html string
	if err := chromedp.Run(browserCtx, chromedp.Sleep(r.settle), chromedp.OuterHTML("html", &html)); err != nil {
		return "", r.renderError(ctx, url, "read html", err)
	}
	return html, nil
}

// run executes actions under their own timeout, derived from the browser
// context so the tab survives for the next phase.
func (r *Renderer) run(browserCtx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (r *Renderer) renderError(ctx context.Context, url, phase string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("rendering %s: %s: %w", url, phase, err)
}

func (r *Renderer) credentialActions(url string) []chromedp.Action {
	actions := []chromedp.Action{network.Enable()}
	if r.creds == nil {
		return actions
	}

	headers := network.Headers{}
	for k, v := range r.creds.Headers {
		headers[k] = v
	}
	if r.creds.HasBasicAuth() {
		headers["Authorization"] = r.creds.BasicAuthHeader()
	}
	if len(headers) > 0 {
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}

	if len(r.creds.Cookies) > 0 {
		cookies := make([]*network.CookieParam, 0, len(r.creds.Cookies))
		for name, value := range r.creds.Cookies {
			cookies = append(cookies, &network.CookieParam{
				Name:  name,
				Value: value,
				URL:   url,
			})
		}
		actions = append(actions, network.SetCookies(cookies))
	}
	return actions
}
