package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	kbhttp "github.com/fwojciec/kbscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs_URLSet(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/intro</loc></url>
  <url><loc> {{BASE}}/blog/guide </loc></url>
  <url><loc></loc></url>
</urlset>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/intro", srv.URL + "/blog/guide"}, urls)
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	// An index with two children of three URLs each yields six URLs.
	srv := newTestServer(t, map[string]string{
		"/sitemap_index.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/child-a.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/child-b.xml</loc></sitemap>
</sitemapindex>`,
		"/child-a.xml": `<urlset><url><loc>{{BASE}}/a/1</loc></url><url><loc>{{BASE}}/a/2</loc></url><url><loc>{{BASE}}/a/3</loc></url></urlset>`,
		"/child-b.xml": `<urlset><url><loc>{{BASE}}/b/1</loc></url><url><loc>{{BASE}}/b/2</loc></url><url><loc>{{BASE}}/b/3</loc></url></urlset>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Len(t, urls, 6)
	for _, p := range []string{"/a/1", "/a/2", "/a/3", "/b/1", "/b/2", "/b/3"} {
		assert.Contains(t, urls, srv.URL+p)
	}
}

func TestSitemapService_DiscoverURLs_NestedIndexStopsAtOneLevel(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<sitemapindex><sitemap><loc>{{BASE}}/inner-index.xml</loc></sitemap><sitemap><loc>{{BASE}}/leaf.xml</loc></sitemap></sitemapindex>`,
		"/inner-index.xml": `<sitemapindex><sitemap><loc>{{BASE}}/deep.xml</loc></sitemap></sitemapindex>`,
		"/deep.xml":        `<urlset><url><loc>{{BASE}}/deep/page</loc></url></urlset>`,
		"/leaf.xml":        `<urlset><url><loc>{{BASE}}/leaf/page</loc></url></urlset>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/leaf/page"}, urls)
}

func TestSitemapService_DiscoverURLs_ProbesWellKnownPaths(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/post-sitemap.xml": `<urlset><url><loc>{{BASE}}/blog/post-one</loc></url></urlset>`,
		"/news-sitemap.xml": `<urlset><url><loc>{{BASE}}/news/story</loc></url><url><loc>{{BASE}}/blog/post-one</loc></url></urlset>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/some/path", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/post-one", srv.URL + "/news/story"}, urls)
}

func TestSitemapService_DiscoverURLs_FollowsHints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/custom/map.xml": `<urlset><url><loc>{{BASE}}/guides/setup</loc></url></urlset>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, []string{srv.URL + "/custom/map.xml"})

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/guides/setup"}, urls)
}

func TestSitemapService_DiscoverURLs_ProcessesEachSitemapOnce(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	hits := map[string]int{}
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		switch r.URL.Path {
		case "/sitemap.xml":
			_, _ = w.Write([]byte(strings.ReplaceAll(`<sitemapindex><sitemap><loc>{{BASE}}/child.xml</loc></sitemap><sitemap><loc>{{BASE}}/child.xml</loc></sitemap></sitemapindex>`, "{{BASE}}", srv.URL)))
		case "/child.xml":
			_, _ = w.Write([]byte(strings.ReplaceAll(`<urlset><url><loc>{{BASE}}/x</loc></url></urlset>`, "{{BASE}}", srv.URL)))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, []string{srv.URL + "/sitemap.xml", srv.URL + "/child.xml"})

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/x"}, urls)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, hits["/sitemap.xml"])
	assert.Equal(t, 1, hits["/child.xml"])
}

func TestSitemapService_DiscoverURLs_SwallowsFailures(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap_index.xml": `not xml at all <<<`,
		"/post-sitemap.xml":  `<html><body>soft 404</body></html>`,
	})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, []string{"http://127.0.0.1:1/unreachable.xml"})

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.NotNil(t, urls)
}

func TestSitemapService_DiscoverURLs_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})

	urls, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.NotNil(t, urls)
}

func TestSitemapService_DiscoverURLs_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<urlset><url><loc>{{BASE}}/page</loc></url></urlset>`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := kbhttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

	require.ErrorIs(t, err, context.Canceled)
}

func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = strings.ReplaceAll(body, "{{BASE}}", srv.URL)

		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}
