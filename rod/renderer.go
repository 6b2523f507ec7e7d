// Package rod renders JavaScript-heavy pages with a headless Chrome browser
// driven by go-rod.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/kbscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Renderer implements kbscrape.Renderer at compile time.
var _ kbscrape.Renderer = (*Renderer)(nil)

// Render defaults.
const (
	DefaultNavigateTimeout = 30 * time.Second
	DefaultBodyTimeout     = 5 * time.Second
	DefaultIdleWait        = 500 * time.Millisecond
)

// Renderer retrieves rendered HTML using Chrome browser automation.
// Each Render call launches its own browser and always shuts it down before
// returning, so no browser state is shared between pages.
// Renderer is safe for concurrent use by multiple goroutines.
type Renderer struct {
	creds           *kbscrape.Credentials
	userAgent       string
	navigateTimeout time.Duration
	bodyTimeout     time.Duration
	idleWait        time.Duration
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

// WithNavigateTimeout bounds navigation and network settling.
func WithNavigateTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.navigateTimeout = d
	}
}

// WithBodyTimeout bounds the wait for the document body.
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
		idleWait:        DefaultIdleWait,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render launches a browser, navigates to the URL, waits for the network to
// settle and the body to appear, and returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, shutdown, err := launchBrowser()
	if err != nil {
		return "", err
	}
	defer shutdown()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := r.prepare(page, url); err != nil {
		return "", err
	}

	navCtx, cancel := context.WithTimeout(ctx, r.navigateTimeout)
	defer cancel()
	nav := page.Context(navCtx)

	waitIdle := nav.WaitRequestIdle(r.idleWait, nil, nil, nil)
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	waitIdle()

	if _, err := page.Timeout(r.bodyTimeout).Element("body"); err != nil {
		return "", fmt.Errorf("waiting for body of %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading html of %s: %w", url, err)
	}
	return html, nil
}

// prepare applies the User-Agent and credentials before navigation.
func (r *Renderer) prepare(page *rod.Page, url string) error {
	if r.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}); err != nil {
			return fmt.Errorf("setting user agent: %w", err)
		}
	}
	if r.creds == nil {
		return nil
	}

	var dict []string
	for k, v := range r.creds.Headers {
		dict = append(dict, k, v)
	}
	if r.creds.HasBasicAuth() {
		dict = append(dict, "Authorization", r.creds.BasicAuthHeader())
	}
	if len(dict) > 0 {
		if _, err := page.SetExtraHeaders(dict); err != nil {
			return fmt.Errorf("setting headers: %w", err)
		}
	}

	if len(r.creds.Cookies) > 0 {
		cookies := make([]*proto.NetworkCookieParam, 0, len(r.creds.Cookies))
		for name, value := range r.creds.Cookies {
			cookies = append(cookies, &proto.NetworkCookieParam{
				Name:  name,
				Value: value,
				URL:   url,
			})
		}
		if err := page.SetCookies(cookies); err != nil {
			return fmt.Errorf("setting cookies: %w", err)
		}
	}
	return nil
}

// launchBrowser starts a headless browser with stability flags. The returned
// shutdown func closes the browser and kills the launched process.
func launchBrowser() (*rod.Browser, func(), error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	shutdown := func() {
		_ = browser.Close()
		lnchr.Kill()
		lnchr.Cleanup()
	}
	return browser, shutdown, nil
}
