package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/urlcast"
)

// Ensure LoggingSynthesizer implements urlcast.Synthesizer.
var _ urlcast.Synthesizer = (*LoggingSynthesizer)(nil)

// LoggingSynthesizer wraps a Synthesizer with logging.
type LoggingSynthesizer struct {
	next   urlcast.Synthesizer
	logger *slog.Logger
}

// NewLoggingSynthesizer creates a new LoggingSynthesizer.
func NewLoggingSynthesizer(next urlcast.Synthesizer, logger *slog.Logger) *LoggingSynthesizer {
	return &LoggingSynthesizer{next: next, logger: logger}
}

// Synthesize delegates to the wrapped synthesizer and logs the operation.
func (s *LoggingSynthesizer) Synthesize(ctx context.Context, text string) (audio []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("synthesize",
			"chars", len(text),
			"bytes", len(audio),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Synthesize(ctx, text)
}

// Ensure LoggingAdapter implements urlcast.Adapter.
var _ urlcast.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter with logging.
type LoggingAdapter struct {
	next   urlcast.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next urlcast.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// Adapt delegates to the wrapped adapter and logs the operation.
func (a *LoggingAdapter) Adapt(ctx context.Context, content string) (adaptation *urlcast.Adaptation, err error) {
	defer func(begin time.Time) {
		revised := 0
		if adaptation != nil {
			revised = len(adaptation.Revised)
		}
		a.logger.Info("adapt",
			"chars", len(content),
			"revised_chars", revised,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Adapt(ctx, content)
}
