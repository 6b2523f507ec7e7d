//go:build integration

package chromedp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("returns JavaScript rendered HTML", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		html, err := chromedp.NewRenderer().Render(ctx, srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "JavaScript Rendered")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("sends user agent and credentials", func(t *testing.T) {
		t.Parallel()

		type seen struct{ ua, auth, cookie, custom string }
		got := make(chan seen, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				select {
				case got <- seen{
					ua:     r.UserAgent(),
					auth:   r.Header.Get("Authorization"),
					cookie: r.Header.Get("Cookie"),
					custom: r.Header.Get("X-Api-Key"),
				}:
				default:
				}
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>ok</body></html>`))
		}))
		defer srv.Close()

		r := chromedp.NewRenderer(chromedp.WithCredentials(&kbscrape.Credentials{
			Username: "user",
			Password: "pass",
			Cookies:  map[string]string{"session": "abc"},
			Headers:  map[string]string{"X-Api-Key": "secret"},
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		_, err := r.Render(ctx, srv.URL+"/")
		require.NoError(t, err)

		s := <-got
		assert.Equal(t, kbscrape.UserAgent, s.ua)
		assert.Equal(t, "Basic dXNlcjpwYXNz", s.auth)
		assert.Contains(t, s.cookie, "session=abc")
		assert.Equal(t, "secret", s.custom)
	})

	t.Run("body wait has its own budget", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><p>ready</p></body></html>`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		r := chromedp.NewRenderer(chromedp.WithBodyTimeout(time.Nanosecond))
		_, err := r.Render(ctx, srv.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "wait for body")
		assert.NoError(t, ctx.Err())
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := chromedp.NewRenderer().Render(ctx, "https://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
