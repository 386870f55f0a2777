package http

import (
	"context"
	"strings"

	"github.com/beevik/etree"
	"github.com/kborowski/docbundle"
)

// Ensure SitemapSource implements docbundle.IndexSource at compile time.
var _ docbundle.IndexSource = (*SitemapSource)(nil)

// SitemapSource discovers markdown links from a sitemap.xml index.
// Sitemap indexes are resolved recursively. Only URLs with a markdown
// extension are kept, deduplicated in first-seen order.
type SitemapSource struct {
	fetcher docbundle.Fetcher
}

// NewSitemapSource creates a SitemapSource backed by the given fetcher.
func NewSitemapSource(fetcher docbundle.Fetcher) *SitemapSource {
	return &SitemapSource{fetcher: fetcher}
}

// Links fetches the sitemap at indexURL and returns the markdown URLs
// it lists. A failed fetch of the top-level sitemap or any nested
// sitemap is reported as EUNAVAILABLE.
func (s *SitemapSource) Links(ctx context.Context, indexURL string) ([]docbundle.Link, error) {
	var links []docbundle.Link
	seenURLs := make(map[string]bool)
	seenSitemaps := make(map[string]bool)

	if err := s.collect(ctx, indexURL, seenSitemaps, seenURLs, &links); err != nil {
		return nil, err
	}

	return links, nil
}

// collect processes one sitemap document, recursing into sitemap
// indexes and appending markdown URLs from urlsets.
func (s *SitemapSource) collect(ctx context.Context, sitemapURL string, seenSitemaps, seenURLs map[string]bool, links *[]docbundle.Link) error {
	if seenSitemaps[sitemapURL] {
		return nil
	}
	seenSitemaps[sitemapURL] = true

	body, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return docbundle.Errorf(docbundle.EUNAVAILABLE, "sitemap fetch failed for %q: %s", sitemapURL, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return docbundle.Errorf(docbundle.EINVALID, "invalid sitemap XML at %q: %s", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return docbundle.Errorf(docbundle.EINVALID, "empty sitemap at %q", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			if err := s.collect(ctx, strings.TrimSpace(loc.Text()), seenSitemaps, seenURLs, links); err != nil {
				return err
			}
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			target := strings.TrimSpace(loc.Text())
			if !docbundle.IsMarkdownURL(target) {
				continue
			}
			if seenURLs[target] {
				continue
			}
			seenURLs[target] = true
			*links = append(*links, docbundle.Link{URL: target, Position: len(*links)})
		}
	default:
		return docbundle.Errorf(docbundle.EINVALID, "unrecognized sitemap root element %q at %q", root.Tag, sitemapURL)
	}

	return nil
}
