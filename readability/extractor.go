// Package readability implements urlcast.Extractor with go-readability's
// scoring algorithm instead of fixed region heuristics.
package readability

import (
	"strings"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements urlcast.Extractor at compile time.
var _ urlcast.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	maxLength int
}

// NewExtractor creates a new Extractor. A maxLength of zero selects
// urlcast.DefaultMaxLength.
func NewExtractor(maxLength int) *Extractor {
	return &Extractor{maxLength: maxLength}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*urlcast.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "readability: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "no content found")
	}

	blocks, err := goquery.BlocksFromHTML(article.Content)
	if err != nil {
		return nil, err
	}

	return urlcast.NewArticle(article.Title, article.Excerpt, blocks, e.maxLength), nil
}
