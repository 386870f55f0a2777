package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/kborowski/docbundle"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps simultaneous in-flight downloads.
const DefaultConcurrency = 5

// Downloader fetches a set of links concurrently, producing exactly
// one DownloadResult per link. A nil RetryDelays means unconfigured
// and falls back to the default backoff schedule; an empty slice means
// a single attempt with no retries.
type Downloader struct {
	Fetcher     docbundle.Fetcher
	Limiter     Limiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// indexedResult pairs a result with its input slice index so the
// collector can place it regardless of completion order.
type indexedResult struct {
	idx    int
	result docbundle.DownloadResult
}

// DownloadAll fetches every link using at most Concurrency in-flight
// requests. Retries for one link run sequentially inside its worker so
// backoff stays meaningful; one link's failure never blocks or cancels
// the others. The returned slice has one result per input link, in
// input order. The progress callback fires once per completed link as
// results arrive.
func (d *Downloader) DownloadAll(ctx context.Context, links []docbundle.Link, progress docbundle.ProgressFunc) []docbundle.DownloadResult {
	results := make([]docbundle.DownloadResult, len(links))
	if len(links) == 0 {
		return results
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := d.RetryDelays
	if delays == nil {
		delays = BackoffDelays(DefaultBackoffBase, DefaultMaxAttempts)
	}

	resultCh := make(chan indexedResult, len(links))

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	go func() {
		for i, link := range links {
			i, link := i, link
			g.Go(func() error {
				resultCh <- indexedResult{idx: i, result: d.download(ctx, link, delays)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results as they complete
	var completed atomic.Int64
	total := len(links)
	for item := range resultCh {
		results[item.idx] = item.result
		n := int(completed.Add(1))

		if d.Logger != nil {
			if item.result.Err != nil {
				d.Logger.Error("download failed",
					"url", item.result.Link.URL,
					"err", item.result.Err,
				)
			} else {
				d.Logger.Info("download complete",
					"url", item.result.Link.URL,
					"bytes", len(item.result.Content),
					"hash", item.result.ContentHash,
				)
			}
		}

		if progress != nil {
			progress(docbundle.Progress{
				URL:       item.result.Link.URL,
				Completed: n,
				Total:     total,
				Err:       item.result.Err,
			})
		}
	}

	return results
}

// download runs one link's full retry sequence.
func (d *Downloader) download(ctx context.Context, link docbundle.Link, delays []time.Duration) docbundle.DownloadResult {
	result := docbundle.DownloadResult{Link: link}

	if d.Limiter != nil {
		u, err := url.Parse(link.URL)
		if err != nil {
			result.Err = err
			return result
		}
		if err := d.Limiter.Wait(ctx, u.Host); err != nil {
			result.Err = err
			return result
		}
	}

	body, err := FetchWithRetry(ctx, link.URL, d.Fetcher.Fetch, d.Logger, delays)
	if err != nil {
		result.Err = err
		return result
	}

	result.Content = body
	result.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(body))
	return result
}
