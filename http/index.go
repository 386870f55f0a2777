package http

import (
	"context"
	"net/url"

	"github.com/kborowski/docbundle"
)

// Ensure IndexSource implements docbundle.IndexSource at compile time.
var _ docbundle.IndexSource = (*IndexSource)(nil)

// IndexSource discovers markdown links from a plaintext index such as
// an llms.txt file.
type IndexSource struct {
	fetcher docbundle.Fetcher
}

// NewIndexSource creates an IndexSource backed by the given fetcher.
func NewIndexSource(fetcher docbundle.Fetcher) *IndexSource {
	return &IndexSource{fetcher: fetcher}
}

// Links fetches the index and parses markdown links from its body.
// Relative links resolve against the index URL. A failed index fetch
// is reported as EUNAVAILABLE; the run has nothing to do without it.
func (s *IndexSource) Links(ctx context.Context, indexURL string) ([]docbundle.Link, error) {
	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, docbundle.Errorf(docbundle.EINVALID, "invalid index URL %q: %s", indexURL, err)
	}

	body, err := s.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, docbundle.Errorf(docbundle.EUNAVAILABLE, "index fetch failed for %q: %s", indexURL, err)
	}

	return docbundle.ParseLinks(body, base), nil
}
