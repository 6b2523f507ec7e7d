package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/kbscrape"
)

// WebsiteScraper runs a scrape for one site.
type WebsiteScraper interface {
	ScrapeWebsite(ctx context.Context, input string) *kbscrape.ScrapeResult
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Now     func() time.Time
	Scraper WebsiteScraper
	Status  *status

	// Optional exports; nil when not requested.
	Store kbscrape.PageStore
	Items kbscrape.ItemService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" help:"Website to scrape (scheme optional, defaults to https)"`

	Output  string `short:"o" env:"KBSCRAPE_OUTPUT" help:"JSON output path (default: knowledge_base_<timestamp>.json)"`
	Pretty  bool   `short:"p" env:"KBSCRAPE_PRETTY" help:"Pretty print JSON output"`
	Verbose bool   `short:"v" env:"KBSCRAPE_VERBOSE" help:"Show debug logs and sample items"`

	Concurrency int     `short:"c" default:"5" env:"KBSCRAPE_CONCURRENCY" help:"Concurrent page extractions"`
	Depth       int     `default:"2" env:"KBSCRAPE_DEPTH" help:"Maximum link crawl depth"`
	RPS         float64 `name:"rps" default:"0" env:"KBSCRAPE_RPS" help:"Crawl requests per second per domain (0 means unlimited)"`
	Engine      string  `default:"readability" enum:"readability,trafilatura" env:"KBSCRAPE_ENGINE" help:"Primary content extraction engine (readability, trafilatura)"`
	Renderer    string  `default:"rod" enum:"rod,chromedp,none" env:"KBSCRAPE_RENDERER" help:"Browser used for JavaScript pages (rod, chromedp, none)"`

	User     string            `env:"KBSCRAPE_USER" help:"Basic auth username"`
	Password string            `env:"KBSCRAPE_PASSWORD" help:"Basic auth password"`
	Cookie   map[string]string `env:"KBSCRAPE_COOKIE" help:"Cookie sent with every request (name=value, repeatable)"`
	Header   map[string]string `env:"KBSCRAPE_HEADER" help:"Header sent with every request (name=value, repeatable)"`

	Include []string `short:"i" help:"Keep only URLs matching this regex (repeatable)"`
	Exclude []string `short:"x" help:"Drop URLs matching this regex (repeatable)"`

	MarkdownDir string `name:"markdown-dir" env:"KBSCRAPE_MARKDOWN_DIR" help:"Also write one markdown file per item under this directory"`
	DB          string `name:"db" env:"KBSCRAPE_DB" help:"Also store items in this SQLite database"`
}

// Credentials returns the outbound request credentials from the flags, or nil
// when none were given.
func (c *CLI) Credentials() *kbscrape.Credentials {
	if c.User == "" && c.Password == "" && len(c.Cookie) == 0 && len(c.Header) == 0 {
		return nil
	}
	return &kbscrape.Credentials{
		Username: c.User,
		Password: c.Password,
		Cookies:  c.Cookie,
		Headers:  c.Header,
	}
}
