package docbundle

import "context"

// Document represents a downloaded documentation file ready for
// aggregation.
type Document struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DownloadResult is the outcome of downloading a single link. Exactly
// one result is produced per input link; it is never mutated after
// creation. Err is nil on success.
type DownloadResult struct {
	Link        Link
	Content     string
	ContentHash string
	Err         error
}

// Failed reports whether the download exhausted its retries.
func (r DownloadResult) Failed() bool { return r.Err != nil }

// Progress reports download progress as results arrive.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called once per completed link, in completion order.
type ProgressFunc func(Progress)

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	// Fetch issues a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases client resources.
	Close() error
}

// IndexSource discovers documentation links from a remote index.
// Implementations hide the index format (plaintext link list, sitemap).
type IndexSource interface {
	// Links fetches the index at indexURL and returns the markdown
	// links it references, deduplicated in first-seen order.
	Links(ctx context.Context, indexURL string) ([]Link, error)
}

// DocumentWriter persists downloaded documents to local storage.
type DocumentWriter interface {
	// WriteDocument writes the document and returns the path used.
	// Distinct URLs never overwrite each other.
	WriteDocument(ctx context.Context, doc *Document) (string, error)
}
