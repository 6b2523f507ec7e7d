package kbscrape

import "context"

// Fetcher retrieves raw HTML from URLs without executing JavaScript.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response body.
	// Non-2xx responses are reported as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Renderer retrieves HTML after a browser has executed the page's scripts.
// Browser resources are acquired and released within each call.
type Renderer interface {
	// Render navigates to the URL, waits for network activity to settle and
	// for the document body to appear, and returns the rendered HTML.
	Render(ctx context.Context, url string) (html string, err error)
}
