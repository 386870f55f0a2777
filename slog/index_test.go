package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/kborowski/docbundle"
	"github.com/kborowski/docbundle/mock"
	dbslog "github.com/kborowski/docbundle/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIndexSource_Links(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := &mock.IndexSource{
		LinksFn: func(ctx context.Context, indexURL string) ([]docbundle.Link, error) {
			return []docbundle.Link{{URL: "https://docs.p2p.org/a.md"}}, nil
		},
	}

	source := dbslog.NewLoggingIndexSource(next, logger)
	links, err := source.Links(context.Background(), "https://docs.p2p.org/llms.txt")
	require.NoError(t, err)

	assert.Len(t, links, 1)
	assert.Contains(t, buf.String(), "index discovery")
	assert.Contains(t, buf.String(), "count=1")
}

func TestLoggingDocumentWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	next := &mock.DocumentWriter{
		WriteDocumentFn: func(ctx context.Context, doc *docbundle.Document) (string, error) {
			return "markdown_files/a.md", nil
		},
	}

	writer := dbslog.NewLoggingDocumentWriter(next, logger)
	path, err := writer.WriteDocument(context.Background(), &docbundle.Document{
		URL: "https://docs.p2p.org/a.md",
	})
	require.NoError(t, err)

	assert.Equal(t, "markdown_files/a.md", path)
	assert.Contains(t, buf.String(), "document write")
}
