// Package fs provides afero-backed storage for downloaded documents,
// the aggregate output, and the failure report. Using afero keeps the
// writers testable against an in-memory filesystem.
package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kborowski/docbundle"
	"github.com/spf13/afero"
)

// Ensure Writer implements docbundle.DocumentWriter at compile time.
var _ docbundle.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files into a single directory.
// Distinct URLs that sanitize to the same file name get deterministic
// numeric suffixes instead of overwriting each other. Writer is not
// safe for concurrent use; the pipeline writes from a single
// goroutine after the download phase.
type Writer struct {
	fs   afero.Fs
	dir  string
	used map[string]string // file name -> URL that claimed it
}

// NewWriter creates a Writer rooted at dir on the host filesystem.
func NewWriter(dir string) *Writer {
	return NewWriterWithFs(afero.NewOsFs(), dir)
}

// NewWriterWithFs creates a Writer on the given filesystem. Tests pass
// an in-memory filesystem.
func NewWriterWithFs(fsys afero.Fs, dir string) *Writer {
	return &Writer{
		fs:   fsys,
		dir:  dir,
		used: make(map[string]string),
	}
}

// WriteDocument persists the document and returns the path written.
// The output directory is created if absent.
func (w *Writer) WriteDocument(ctx context.Context, doc *docbundle.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}

	name := w.claim(docbundle.Link{URL: doc.URL}.Filename(), doc.URL)
	path := filepath.Join(w.dir, name)

	if err := afero.WriteFile(w.fs, path, []byte(doc.Content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// claim reserves a file name for a URL, disambiguating collisions with
// a counter before the extension: name.md, name-1.md, name-2.md, ...
// Claiming is deterministic in write order.
func (w *Writer) claim(name, url string) string {
	if owner, ok := w.used[name]; !ok || owner == url {
		w.used[name] = url
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if owner, ok := w.used[candidate]; !ok || owner == url {
			w.used[candidate] = url
			return candidate
		}
	}
}

// WriteAggregate writes the aggregate document to path.
func WriteAggregate(fsys afero.Fs, path, content string) error {
	return afero.WriteFile(fsys, path, []byte(content), 0o644)
}
