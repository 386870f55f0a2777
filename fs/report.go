package fs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kborowski/docbundle"
	"github.com/spf13/afero"
)

// WriteFailureReport writes one "url: error" line per failed result to
// path. When the run had no failures, any stale report from a previous
// run is removed, so the file's absence signals a fully successful
// run.
func WriteFailureReport(fsys afero.Fs, path string, results []docbundle.DownloadResult) error {
	var b strings.Builder
	for _, result := range results {
		if !result.Failed() {
			continue
		}
		fmt.Fprintf(&b, "%s: %v\n", result.Link.URL, result.Err)
	}

	if b.Len() == 0 {
		if err := fsys.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	return afero.WriteFile(fsys, path, []byte(b.String()), 0o644)
}
