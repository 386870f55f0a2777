package mock

import (
	"context"

	"github.com/kborowski/docbundle"
)

var _ docbundle.IndexSource = (*IndexSource)(nil)

// IndexSource is a mock implementation of docbundle.IndexSource.
type IndexSource struct {
	LinksFn func(ctx context.Context, indexURL string) ([]docbundle.Link, error)
}

func (s *IndexSource) Links(ctx context.Context, indexURL string) ([]docbundle.Link, error) {
	return s.LinksFn(ctx, indexURL)
}
