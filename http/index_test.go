package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kborowski/docbundle"
	dbhttp "github.com/kborowski/docbundle/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSource_Links(t *testing.T) {
	t.Parallel()

	t.Run("parses links from the index body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[A](https://docs.p2p.org/a.md)\n[B](https://docs.p2p.org/b.md)\n"))
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewIndexSource(fetcher)
		links, err := source.Links(context.Background(), server.URL+"/llms.txt")
		require.NoError(t, err)

		require.Len(t, links, 2)
		assert.Equal(t, "https://docs.p2p.org/a.md", links[0].URL)
		assert.Equal(t, "https://docs.p2p.org/b.md", links[1].URL)
	})

	t.Run("resolves relative links against the index URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[Intro](guides/intro.md)\n"))
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewIndexSource(fetcher)
		links, err := source.Links(context.Background(), server.URL+"/llms.txt")
		require.NoError(t, err)

		require.Len(t, links, 1)
		assert.Equal(t, server.URL+"/guides/intro.md", links[0].URL)
	})

	t.Run("returns EUNAVAILABLE when the index fetch fails", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewIndexSource(fetcher)
		_, err := source.Links(context.Background(), server.URL+"/llms.txt")

		require.Error(t, err)
		assert.Equal(t, docbundle.EUNAVAILABLE, docbundle.ErrorCode(err))
	})

	t.Run("returns no links for an empty index", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(""))
		}))
		defer server.Close()

		fetcher := dbhttp.NewFetcher()
		defer fetcher.Close()

		source := dbhttp.NewIndexSource(fetcher)
		links, err := source.Links(context.Background(), server.URL+"/llms.txt")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
