package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/ahocorasick"
	"github.com/fwojciec/kbscrape/bloom"
	"github.com/fwojciec/kbscrape/chromedp"
	"github.com/fwojciec/kbscrape/crawl"
	"github.com/fwojciec/kbscrape/fs"
	"github.com/fwojciec/kbscrape/goquery"
	"github.com/fwojciec/kbscrape/htmltomarkdown"
	kbhttp "github.com/fwojciec/kbscrape/http"
	"github.com/fwojciec/kbscrape/readability"
	"github.com/fwojciec/kbscrape/rod"
	kbslog "github.com/fwojciec/kbscrape/slog"
	"github.com/fwojciec/kbscrape/sqlite"
	"github.com/fwojciec/kbscrape/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Now returns the current time. Used for the default output file name.
	Now func() time.Time

	// NewScraper builds the scraper from parsed flags. Tests replace it.
	NewScraper func(cli *CLI, logger *slog.Logger, progress kbscrape.ProgressFunc) (WebsiteScraper, error)

	// SQLite database, opened only when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now:        time.Now,
		NewScraper: NewScraper,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbscrape"),
		kong.Description("Scrape a website into a knowledge base of classified markdown items"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL specified. Run 'kbscrape --help' for usage")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	status := newStatus(stderr)

	scraper, err := m.NewScraper(cli, logger, status.Progress)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", kbscrape.ErrorMessage(err))
		return err
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Now:     m.Now,
		Scraper: scraper,
		Status:  status,
	}

	if cli.MarkdownDir != "" {
		dir := filepath.Clean(cli.MarkdownDir)
		deps.Store = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
	}

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Items = sqlite.NewItemService(m.DB)
	}

	return cli.Run(deps)
}

// newLogger returns a slog logger backed by a charmbracelet handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(handler)
}

// NewScraper wires the production scraper for the given flags.
func NewScraper(cli *CLI, logger *slog.Logger, progress kbscrape.ProgressFunc) (WebsiteScraper, error) {
	filter, err := kbscrape.CompileURLFilter(cli.Include, cli.Exclude)
	if err != nil {
		return nil, err
	}

	creds := cli.Credentials()
	client := kbhttp.NewClient(creds, 0)

	var fetcher kbscrape.Fetcher = kbhttp.NewFetcher(kbhttp.WithCredentials(creds))
	fetcher = kbslog.NewLoggingFetcher(fetcher, logger)

	var primary kbscrape.BlockFinder
	switch cli.Engine {
	case "trafilatura":
		primary = trafilatura.NewBlockFinder()
	default:
		primary = readability.NewBlockFinder()
	}

	var renderer kbscrape.Renderer
	switch cli.Renderer {
	case "rod":
		renderer = kbslog.NewLoggingRenderer(rod.NewRenderer(rod.WithCredentials(creds)), logger)
	case "chromedp":
		renderer = kbslog.NewLoggingRenderer(chromedp.NewRenderer(chromedp.WithCredentials(creds)), logger)
	}

	var limiter kbscrape.DomainLimiter
	if cli.RPS > 0 {
		limiter = crawl.NewDomainLimiter(cli.RPS)
	}

	extractor := &crawl.PageExtractor{
		Fetcher:  fetcher,
		Renderer: renderer,
		Chain: crawl.NewContentChain(
			htmltomarkdown.NewConverter(),
			primary,
			goquery.NewSelectorFinder(),
			goquery.NewLargestBlockFinder(),
		),
		Titles: goquery.NewTitleExtractor(),
	}

	return &crawl.Scraper{
		Robots: kbslog.NewLoggingRobotsService(kbhttp.NewRobotsService(client), logger),
		Source: &crawl.Discoverer{
			Sitemaps:    kbslog.NewLoggingSitemapService(kbhttp.NewSitemapService(client), logger),
			Fetcher:     fetcher,
			Links:       goquery.NewAnchorSelector(),
			RateLimiter: limiter,
			NewVisitedSet: func() kbscrape.VisitedSet {
				return bloom.NewDefaultVisitedSet()
			},
			Filter:   filter,
			MaxDepth: cli.Depth,
		},
		Extractor:   kbslog.NewLoggingPageExtractor(extractor, logger),
		Classifier:  ahocorasick.NewClassifier(),
		Logger:      logger,
		Concurrency: cli.Concurrency,
		Progress:    progress,
	}, nil
}
