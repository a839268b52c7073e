// Package trafilatura implements urlcast.Extractor with go-trafilatura,
// which handles pages the fixed region heuristics miss.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/urlcast"
	"github.com/fwojciec/urlcast/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements urlcast.Extractor at compile time.
var _ urlcast.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "trafilatura: %v", err)
	}
	if result.ContentNode == nil {
		return nil, urlcast.Errorf(urlcast.ENOCONTENT, "no content found")
	}

	blocks := goquery.BlocksFromNode(result.ContentNode)

	return urlcast.NewArticle(result.Metadata.Title, result.Metadata.Description, blocks, e.maxLength), nil
}
