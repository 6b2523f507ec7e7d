package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/kbscrape"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTimeout bounds the robots.txt request.
const DefaultRobotsTimeout = 5 * time.Second

var _ kbscrape.RobotsService = (*RobotsService)(nil)

// RobotsService reads robots.txt with temoto/robotstxt.
type RobotsService struct {
	client  *http.Client
	agent   string
	timeout time.Duration
}

// NewRobotsService creates a RobotsService that evaluates rules for
// kbscrape.RobotsAgent. If client is nil, a default client is used.
func NewRobotsService(client *http.Client) *RobotsService {
	if client == nil {
		client = NewClient(nil, 0)
	}
	return &RobotsService{
		client:  client,
		agent:   kbscrape.RobotsAgent,
		timeout: DefaultRobotsTimeout,
	}
}

// Check fetches baseURL/robots.txt and reports whether the site root is
// allowed for the scraper's agent, along with any Sitemap directives.
// Missing or unreadable files allow everything.
func (s *RobotsService) Check(ctx context.Context, baseURL string) *kbscrape.RobotsReport {
	report := &kbscrape.RobotsReport{Allowed: true}

	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return report
	}
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return report
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return report
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return report
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return report
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return report
	}

	report.Allowed = data.TestAgent("/", s.agent)
	for _, sm := range data.Sitemaps {
		if sm = strings.TrimSpace(sm); sm != "" {
			report.Sitemaps = append(report.Sitemaps, sm)
		}
	}
	return report
}
