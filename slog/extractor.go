package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/urlcast"
)

// Ensure LoggingExtractor implements urlcast.Extractor.
var _ urlcast.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   urlcast.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next urlcast.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result size.
func (e *LoggingExtractor) Extract(html string) (article *urlcast.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"html_bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		}
		if article != nil {
			attrs = append(attrs,
				"title", article.Title,
				"blocks", len(article.Blocks),
				"bytes", len(article.Content),
				"truncated", article.Truncated,
			)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
