package mock

import (
	"context"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.ArticleReader = (*ArticleReader)(nil)

// ArticleReader is a mock implementation of urlcast.ArticleReader.
type ArticleReader struct {
	ReadFn func(ctx context.Context, url string) (*urlcast.Article, error)
}

func (r *ArticleReader) Read(ctx context.Context, url string) (*urlcast.Article, error) {
	return r.ReadFn(ctx, url)
}
