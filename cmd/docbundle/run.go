package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/kborowski/docbundle"
	"github.com/kborowski/docbundle/fetch"
	"github.com/kborowski/docbundle/fs"
	dbhttp "github.com/kborowski/docbundle/http"
	"github.com/kborowski/docbundle/markdown"
	dbslog "github.com/kborowski/docbundle/slog"
	"github.com/spf13/afero"
)

// RunCmd executes the fetch-index, download, and aggregate-and-report
// phases in sequence.
type RunCmd struct {
	CLI    *CLI
	Fs     afero.Fs
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer

	// Optional overrides, used by tests. When nil they are built from
	// the CLI configuration.
	Source      docbundle.IndexSource
	Fetcher     docbundle.Fetcher
	Writer      docbundle.DocumentWriter
	RetryDelays []time.Duration
	Now         func() time.Time
}

// Run executes the pipeline. Only an index fetch failure is fatal;
// every later failure is isolated to its own document.
func (c *RunCmd) Run(ctx context.Context) error {
	fetcher := c.Fetcher
	if fetcher == nil {
		fetcher = dbhttp.NewFetcher(dbhttp.WithTimeout(c.CLI.Timeout))
	}
	defer fetcher.Close()

	source := c.Source
	if source == nil {
		if c.CLI.Sitemap {
			source = dbhttp.NewSitemapSource(fetcher)
		} else {
			source = dbhttp.NewIndexSource(fetcher)
		}
	}
	source = dbslog.NewLoggingIndexSource(source, c.Logger)

	// Phase 1: fetch the index. Failure here aborts the run.
	links, err := source.Links(ctx, c.CLI.URL)
	if err != nil {
		fmt.Fprintf(c.Stderr, "error: %s\n", docbundle.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(c.Stdout, "Found %d unique markdown links\n", len(links))

	// Phase 2: download with bounded concurrency.
	delays := c.RetryDelays
	if delays == nil {
		delays = fetch.BackoffDelays(fetch.DefaultBackoffBase, c.CLI.Retries)
	}
	var limiter fetch.Limiter
	if c.CLI.RPS > 0 {
		limiter = fetch.NewDomainLimiter(c.CLI.RPS)
	}
	downloader := &fetch.Downloader{
		Fetcher:     fetcher,
		Limiter:     limiter,
		Concurrency: c.CLI.Workers,
		RetryDelays: delays,
		Logger:      c.Logger,
	}

	results := downloader.DownloadAll(ctx, links, c.progress())

	if !c.CLI.Plain && len(links) > 0 {
		// Clear progress line
		fmt.Fprintf(c.Stdout, "\r%80s\r", "")
	}

	// Phase 3: write files, aggregate, and report. Always runs over
	// whatever succeeded, even if empty.
	writer := c.Writer
	if writer == nil {
		writer = fs.NewWriterWithFs(c.Fs, c.CLI.Dir)
	}
	writer = dbslog.NewLoggingDocumentWriter(writer, c.Logger)

	var docs []*docbundle.Document
	var failed int
	for _, result := range results {
		if result.Failed() {
			failed++
			continue
		}
		doc := &docbundle.Document{
			URL:      result.Link.URL,
			Title:    documentTitle(result),
			Content:  result.Content,
			Position: result.Link.Position,
		}
		if _, err := writer.WriteDocument(ctx, doc); err != nil {
			c.Logger.Warn("excluding document from aggregate",
				"url", doc.URL,
				"err", err,
			)
			continue
		}
		docs = append(docs, doc)
	}

	agg := docbundle.Aggregate{Title: c.CLI.Title, Now: c.Now}
	if err := fs.WriteAggregate(c.Fs, c.CLI.Output, agg.Build(docs)); err != nil {
		return fmt.Errorf("failed to write aggregate: %w", err)
	}

	if err := fs.WriteFailureReport(c.Fs, c.CLI.Failures, results); err != nil {
		return fmt.Errorf("failed to write failure report: %w", err)
	}

	c.Logger.Info("run complete",
		"links", len(links),
		"aggregated", len(docs),
		"failed", failed,
	)

	fmt.Fprintf(c.Stdout, "Aggregated %d of %d documents into %s\n", len(docs), len(links), c.CLI.Output)
	if failed > 0 {
		fmt.Fprintf(c.Stdout, "%d downloads failed; see %s\n", failed, c.CLI.Failures)
	}
	return nil
}

// progress returns the progress callback for the configured mode.
func (c *RunCmd) progress() docbundle.ProgressFunc {
	if c.CLI.Plain {
		return func(p docbundle.Progress) {
			pct := float64(p.Completed) / float64(p.Total) * 100
			fmt.Fprintf(c.Stdout, "Progress: %.1f%% (%d/%d)\n", pct, p.Completed, p.Total)
		}
	}
	return func(p docbundle.Progress) {
		if p.Err != nil {
			fmt.Fprintf(c.Stderr, "skip %s: %v\n", p.URL, p.Err)
		}
		fmt.Fprintf(c.Stdout, "\r[%d/%d] %s", p.Completed, p.Total, truncateURL(p.URL, 40))
	}
}

// documentTitle prefers the document's first heading, falling back to
// the filename-derived title.
func documentTitle(result docbundle.DownloadResult) string {
	if title := markdown.FirstHeading(result.Content); title != "" {
		return title
	}
	return result.Link.Title()
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host
// prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback to simple right-truncation
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
