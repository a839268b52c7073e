package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcast"
)

// Ensure LoggingObjectStore implements urlcast.ObjectStore.
var _ urlcast.ObjectStore = (*LoggingObjectStore)(nil)

// LoggingObjectStore wraps an ObjectStore with logging.
type LoggingObjectStore struct {
	next   urlcast.ObjectStore
	logger *slog.Logger
}

// NewLoggingObjectStore creates a new LoggingObjectStore.
func NewLoggingObjectStore(next urlcast.ObjectStore, logger *slog.Logger) *LoggingObjectStore {
	return &LoggingObjectStore{next: next, logger: logger}
}

// Put counts the bytes written and delegates to the wrapped store.
func (s *LoggingObjectStore) Put(ctx context.Context, key, contentType string, r io.Reader) (url string, err error) {
	cr := &countingReader{r: r}
	defer func(begin time.Time) {
		s.logger.Info("put object",
			"key", key,
			"content_type", contentType,
			"bytes", cr.n,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Put(ctx, key, contentType, cr)
}

// Get delegates to the wrapped store.
func (s *LoggingObjectStore) Get(ctx context.Context, key string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("get object",
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
