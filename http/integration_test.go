//go:build integration

package http_test

import (
	"context"
	"testing"
	"time"

	kbhttp "github.com/fwojciec/kbscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises robots.txt, sitemap resolution and a static fetch against a
// live site that publishes a sitemap.
func TestDiscovery_Integration_GoDev(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	client := kbhttp.NewClient(nil, 0)

	report := kbhttp.NewRobotsService(client).Check(ctx, "https://go.dev")
	assert.True(t, report.Allowed)

	urls, err := kbhttp.NewSitemapService(client).DiscoverURLs(ctx, "https://go.dev", report.Sitemaps)
	require.NoError(t, err)
	require.NotEmpty(t, urls)
	t.Logf("sitemap listed %d URLs", len(urls))

	html, err := kbhttp.NewFetcher().Fetch(ctx, urls[0])
	require.NoError(t, err)
	assert.Contains(t, html, "<html")
}
