package mock

import "github.com/fwojciec/urlcast"

var _ urlcast.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of urlcast.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*urlcast.Article, error)
}

func (e *Extractor) Extract(html string) (*urlcast.Article, error) {
	return e.ExtractFn(html)
}
