// Package fs provides file-based output for scrape results.
package fs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/kbscrape"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/blog/my-post → blog/my-post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.md", nil
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", kbscrape.Errorf(kbscrape.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// WriteJSON writes the result to path as JSON. The file is written to a
// temporary sibling and renamed into place, so readers never see a partial
// document.
func WriteJSON(path string, result *kbscrape.ScrapeResult, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
