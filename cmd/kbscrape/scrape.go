package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/kbscrape"
	"github.com/fwojciec/kbscrape/crawl"
	"github.com/fwojciec/kbscrape/fs"
)

const sampleCount = 3

// Run scrapes the site, writes the JSON result and any requested exports,
// and prints a summary.
func (c *CLI) Run(deps *Dependencies) error {
	deps.Status.Start("Scraping " + c.URL)
	begin := time.Now()
	result := deps.Scraper.ScrapeWebsite(deps.Ctx, c.URL)
	deps.Status.Stop()

	if result.Error != "" {
		fmt.Fprintf(deps.Stderr, "error: scraping failed: %s\n", result.Error)
		return errors.New(result.Error)
	}
	fmt.Fprintf(deps.Stdout, "Scraped %s in %.1fs\n", result.Site, time.Since(begin).Seconds())

	c.printSummary(deps, result)

	output := c.Output
	if output == "" {
		output = fmt.Sprintf("knowledge_base_%s.json", deps.Now().UTC().Format("2006-01-02T15-04-05"))
	}
	if err := fs.WriteJSON(output, result, c.Pretty); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbscrape.ErrorMessage(err))
		return err
	}
	size := 0
	if info, err := os.Stat(output); err == nil {
		size = int(info.Size())
	}
	fmt.Fprintf(deps.Stdout, "Results saved to %s (%s)\n", output, crawl.FormatBytes(size))

	if deps.Store != nil {
		if err := exportMarkdown(deps, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: markdown export: %s\n", kbscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Markdown written to %s\n", c.MarkdownDir)
	}

	if deps.Items != nil {
		if err := exportItems(deps, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: database export: %s\n", kbscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Stored %d items in %s\n", len(result.Items), c.DB)
	}

	return nil
}

func (c *CLI) printSummary(deps *Dependencies, result *kbscrape.ScrapeResult) {
	if len(result.Items) == 0 {
		fmt.Fprintln(deps.Stdout, "No content items found")
		return
	}

	fmt.Fprintln(deps.Stdout, "Summary:")
	fmt.Fprintf(deps.Stdout, "  Total items found: %d\n", result.Stats.TotalItems)
	fmt.Fprintln(deps.Stdout, "  Content types:")
	for _, row := range crawl.SummarizeTypes(result.Stats) {
		fmt.Fprintf(deps.Stdout, "    - %s: %d\n", row.Type, row.Count)
	}

	if !c.Verbose {
		return
	}
	fmt.Fprintln(deps.Stdout, "Sample items:")
	for i, item := range result.Items[:min(sampleCount, len(result.Items))] {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, item.Title)
		fmt.Fprintf(deps.Stdout, "     Type: %s\n", item.ContentType)
		fmt.Fprintf(deps.Stdout, "     URL: %s\n", item.SourceURL)
		fmt.Fprintf(deps.Stdout, "     Content: %s\n", crawl.Preview(item.Content, 100))
	}
	if rest := len(result.Items) - sampleCount; rest > 0 {
		fmt.Fprintf(deps.Stdout, "  ...and %d more items\n", rest)
	}
}

// exportMarkdown saves every item and commits only if all saves succeed.
func exportMarkdown(deps *Dependencies, result *kbscrape.ScrapeResult) error {
	for _, item := range result.Items {
		if err := deps.Store.Save(deps.Ctx, item); err != nil {
			_ = deps.Store.Abort()
			return err
		}
	}
	return deps.Store.Commit()
}

// exportItems replaces the site's stored items with this run's items.
func exportItems(deps *Dependencies, result *kbscrape.ScrapeResult) error {
	stored := make([]*kbscrape.StoredItem, 0, len(result.Items))
	for _, item := range result.Items {
		stored = append(stored, &kbscrape.StoredItem{ContentItem: *item, Site: result.Site})
	}
	return deps.Items.ReplaceSiteItems(deps.Ctx, result.Site, stored)
}
