package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/kbscrape"
)

// Ensure FileStore implements kbscrape.PageStore at compile time.
var _ kbscrape.PageStore = (*FileStore)(nil)

// FileStore implements kbscrape.PageStore with atomic update semantics.
// Items are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	now     func() time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the item as a markdown file under the temporary directory.
func (s *FileStore) Save(ctx context.Context, item *kbscrape.ContentItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(item.SourceURL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatItem(item, s.now())), 0644)
}

// FormatItem formats an item with YAML frontmatter.
func FormatItem(item *kbscrape.ContentItem, crawled time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(item.SourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(quoteYAML(item.Title))
	b.WriteString("\ncontent_type: ")
	b.WriteString(string(item.ContentType))
	b.WriteString("\ncrawled: ")
	b.WriteString(crawled.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(item.Content)
	b.WriteString("\n")
	return b.String()
}

// quoteYAML double-quotes titles that would otherwise break the frontmatter.
func quoteYAML(s string) string {
	if !strings.ContainsAny(s, ":#\"'\n") {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return `"` + s + `"`
}

// Commit replaces the final directory with the temporary one. Committing
// without any saved items leaves an empty directory.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last Commit.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
