// Package slog provides logging decorators for docbundle services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kborowski/docbundle"
)

// Ensure LoggingIndexSource implements docbundle.IndexSource.
var _ docbundle.IndexSource = (*LoggingIndexSource)(nil)

// LoggingIndexSource wraps an IndexSource with logging.
type LoggingIndexSource struct {
	next   docbundle.IndexSource
	logger *slog.Logger
}

// NewLoggingIndexSource creates a new LoggingIndexSource.
func NewLoggingIndexSource(next docbundle.IndexSource, logger *slog.Logger) *LoggingIndexSource {
	return &LoggingIndexSource{next: next, logger: logger}
}

// Links delegates to the wrapped source and logs the operation.
func (s *LoggingIndexSource) Links(ctx context.Context, indexURL string) (links []docbundle.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index discovery",
			"url", indexURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Links(ctx, indexURL)
}
