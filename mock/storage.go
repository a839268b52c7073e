package mock

import (
	"context"
	"io"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is a mock implementation of urlcast.ObjectStore.
type ObjectStore struct {
	PutFn func(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	GetFn func(ctx context.Context, key string) ([]byte, error)
}

func (s *ObjectStore) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	return s.PutFn(ctx, key, contentType, r)
}

func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

var _ urlcast.FeedRenderer = (*FeedRenderer)(nil)

// FeedRenderer is a mock implementation of urlcast.FeedRenderer.
type FeedRenderer struct {
	RenderFeedFn func(channel urlcast.Channel, episodes []*urlcast.Episode) ([]byte, error)
}

func (r *FeedRenderer) RenderFeed(channel urlcast.Channel, episodes []*urlcast.Episode) ([]byte, error) {
	return r.RenderFeedFn(channel, episodes)
}
