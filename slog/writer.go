package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kborowski/docbundle"
)

// Ensure LoggingDocumentWriter implements docbundle.DocumentWriter.
var _ docbundle.DocumentWriter = (*LoggingDocumentWriter)(nil)

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   docbundle.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next docbundle.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, doc *docbundle.Document) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("document write",
			"url", doc.URL,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc)
}
