package mock

import (
	"context"

	"github.com/fwojciec/urlcast"
)

var _ urlcast.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of urlcast.Synthesizer.
type Synthesizer struct {
	SynthesizeFn func(ctx context.Context, text string) ([]byte, error)
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.SynthesizeFn(ctx, text)
}

var _ urlcast.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of urlcast.Adapter.
type Adapter struct {
	AdaptFn func(ctx context.Context, content string) (*urlcast.Adaptation, error)
}

func (a *Adapter) Adapt(ctx context.Context, content string) (*urlcast.Adaptation, error) {
	return a.AdaptFn(ctx, content)
}
