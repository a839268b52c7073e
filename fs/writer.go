// Package fs provides file-based storage for urlcast: a local object store,
// caller-owned work directories and markdown export of articles.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/urlcast"
)

// URLToPath converts an article URL to a relative file path.
// Example: https://example.com/blog/post → blog/post.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// FormatArticle formats an article with YAML frontmatter.
func FormatArticle(sourceURL string, a *urlcast.Article, extracted time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(sourceURL)
	b.WriteString("\ntitle: ")
	b.WriteString(a.Title)
	b.WriteString("\nextracted: ")
	b.WriteString(extracted.Format("2006-01-02"))
	if a.Truncated {
		b.WriteString("\ntruncated: true")
	}
	b.WriteString("\n---\n\n")
	b.WriteString(a.Content)
	b.WriteString("\n")
	return b.String()
}

// Writer writes articles as markdown files to a directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// WriteArticle writes the article extracted from sourceURL and returns the
// file path.
func (w *Writer) WriteArticle(sourceURL string, a *urlcast.Article) (string, error) {
	relPath, err := URLToPath(sourceURL)
	if err != nil {
		return "", urlcast.Errorf(urlcast.EINVALID, "invalid URL: %v", err)
	}
	if !filepath.IsLocal(filepath.FromSlash(relPath)) {
		return "", urlcast.Errorf(urlcast.EINVALID, "URL path escapes output directory: %s", sourceURL)
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content := FormatArticle(sourceURL, a, w.now())
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
