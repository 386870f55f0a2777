package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kborowski/docbundle"
	dbhttp "github.com/kborowski/docbundle/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapSource_Links(t *testing.T) {
	t.Parallel()

	t.Run("keeps only markdown URLs from a urlset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://docs.p2p.org/a.md</loc></url>
  <url><loc>https://docs.p2p.org/page.html</loc></url>
  <url><loc>https://docs.p2p.org/b.md</loc></url>
</urlset>`)
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewSitemapSource(fetcher)
		links, err := source.Links(context.Background(), server.URL+"/sitemap.xml")
		require.NoError(t, err)

		require.Len(t, links, 2)
		assert.Equal(t, "https://docs.p2p.org/a.md", links[0].URL)
		assert.Equal(t, 0, links[0].Position)
		assert.Equal(t, "https://docs.p2p.org/b.md", links[1].URL)
		assert.Equal(t, 1, links[1].Position)
	})

	t.Run("recurses through sitemap indexes", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%s/sitemap-1.xml</loc></sitemap>
  <sitemap><loc>%s/sitemap-2.xml</loc></sitemap>
</sitemapindex>`, server.URL, server.URL)
		})
		mux.HandleFunc("/sitemap-1.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<urlset><url><loc>https://docs.p2p.org/a.md</loc></url></urlset>`)
		})
		mux.HandleFunc("/sitemap-2.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<urlset>
  <url><loc>https://docs.p2p.org/b.md</loc></url>
  <url><loc>https://docs.p2p.org/a.md</loc></url>
</urlset>`)
		})

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewSitemapSource(fetcher)
		links, err := source.Links(context.Background(), server.URL+"/sitemap.xml")
		require.NoError(t, err)

		require.Len(t, links, 2)
		assert.Equal(t, "https://docs.p2p.org/a.md", links[0].URL)
		assert.Equal(t, "https://docs.p2p.org/b.md", links[1].URL)
	})

	t.Run("returns EUNAVAILABLE when the sitemap fetch fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewSitemapSource(fetcher)
		_, err := source.Links(context.Background(), server.URL+"/sitemap.xml")

		require.Error(t, err)
		assert.Equal(t, docbundle.EUNAVAILABLE, docbundle.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed XML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<urlset><url>`)
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewSitemapSource(fetcher)
		_, err := source.Links(context.Background(), server.URL+"/sitemap.xml")

		require.Error(t, err)
		assert.Equal(t, docbundle.EINVALID, docbundle.ErrorCode(err))
	})
}
