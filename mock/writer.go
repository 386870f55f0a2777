package mock

import (
	"context"

	"github.com/kborowski/docbundle"
)

var _ docbundle.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of docbundle.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *docbundle.Document) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *docbundle.Document) (string, error) {
	return w.WriteDocumentFn(ctx, doc)
}
