package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.Streamer = (*Streamer)(nil)

// Streamer is a mock implementation of urlcast.Streamer.
type Streamer struct {
	StreamFn func(ctx context.Context, text string) iter.Seq[urlcast.Event]
}

func (s *Streamer) Stream(ctx context.Context, text string) iter.Seq[urlcast.Event] {
	return s.StreamFn(ctx, text)
}
