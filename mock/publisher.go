package mock

import (
	"context"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of urlcast.Publisher.
type Publisher struct {
	PreviewFn func(ctx context.Context, url string) (*urlcast.Preview, error)
	PublishFn func(ctx context.Context, url string) (*urlcast.Publication, error)
}

func (p *Publisher) Preview(ctx context.Context, url string) (*urlcast.Preview, error) {
	return p.PreviewFn(ctx, url)
}

func (p *Publisher) Publish(ctx context.Context, url string) (*urlcast.Publication, error) {
	return p.PublishFn(ctx, url)
}
