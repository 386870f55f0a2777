package fs_test

import (
	"errors"
	"testing"

	"github.com/kborowski/docbundle"
	"github.com/kborowski/docbundle/fs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFailureReport(t *testing.T) {
	t.Parallel()

	t.Run("writes one line per failed result", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		results := []docbundle.DownloadResult{
			{Link: docbundle.Link{URL: "https://docs.p2p.org/a.md"}},
			{Link: docbundle.Link{URL: "https://docs.p2p.org/b.md"}, Err: errors.New("HTTP 500 for https://docs.p2p.org/b.md")},
			{Link: docbundle.Link{URL: "https://docs.p2p.org/c.md"}, Err: errors.New("timeout")},
		}

		err := fs.WriteFailureReport(fsys, "failed_urls.txt", results)
		require.NoError(t, err)

		content, err := afero.ReadFile(fsys, "failed_urls.txt")
		require.NoError(t, err)
		assert.Equal(t,
			"https://docs.p2p.org/b.md: HTTP 500 for https://docs.p2p.org/b.md\n"+
				"https://docs.p2p.org/c.md: timeout\n",
			string(content))
	})

	t.Run("writes nothing when there are no failures", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		results := []docbundle.DownloadResult{
			{Link: docbundle.Link{URL: "https://docs.p2p.org/a.md"}},
		}

		err := fs.WriteFailureReport(fsys, "failed_urls.txt", results)
		require.NoError(t, err)

		exists, err := afero.Exists(fsys, "failed_urls.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("removes a stale report from a previous run", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "failed_urls.txt", []byte("old"), 0o644))

		err := fs.WriteFailureReport(fsys, "failed_urls.txt", nil)
		require.NoError(t, err)

		exists, err := afero.Exists(fsys, "failed_urls.txt")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
