package urlcast

import (
	"context"
	"net/url"
)

// ArticleReader reads the article at a URL.
type ArticleReader interface {
	Read(ctx context.Context, rawURL string) (*Article, error)
}

var _ ArticleReader = (*PageReader)(nil)

// PageReader reads articles by fetching pages and extracting their content.
type PageReader struct {
	Fetcher   Fetcher
	Extractor Extractor
}

// Read validates the URL, fetches the page and extracts its article.
// Returns EINVALID for a URL that is not absolute http(s).
func (r *PageReader) Read(ctx context.Context, rawURL string) (*Article, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := r.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return r.Extractor.Extract(html)
}

// ValidateURL returns EINVALID unless rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "url %q has no host", rawURL)
	}
	return nil
}
