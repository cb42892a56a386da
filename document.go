package sitesearch

import (
	"context"
	"time"
)

// OffsetUnresolved marks a header whose text could not be located in the
// flattened document text. Unresolved headers are excluded from anchor
// resolution.
const OffsetUnresolved = -1

// Document represents one indexed page: its canonical flattened text plus the
// header offset map used for deep-linking. A Document is immutable once the
// loader has built it.
type Document struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Text        string      `json:"text"`
	Headers     []HeaderRef `json:"headers"`
	ContentHash string      `json:"contentHash"`
	FetchedAt   time.Time   `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// HeaderRef locates one heading element inside a document's flattened text.
// Headers appear in document order, not sorted by offset, though the two
// coincide absent extraction anomalies.
type HeaderRef struct {
	// ID is the heading's anchor identifier. Empty is valid; the topmost
	// heading of a page typically carries no anchor.
	ID string `json:"id"`

	// Text is the heading's whitespace-collapsed content.
	Text string `json:"text"`

	// Offset is the index of the first occurrence of Text within the owning
	// document's Text, or OffsetUnresolved when it could not be located.
	Offset int `json:"offset"`
}

// Resolved reports whether the header was located in the flattened text.
func (h HeaderRef) Resolved() bool { return h.Offset != OffsetUnresolved }

// ExtractResult holds the content extracted from a single HTML page.
type ExtractResult struct {
	// Title is the page's normalized display title (may be empty).
	Title string

	// Text is the canonical flattened body text: structural blocks removed,
	// whitespace collapsed.
	Text string

	// Headers are the page's h1-h6 elements in document order, with offsets
	// into Text.
	Headers []HeaderRef
}

// Extractor turns raw HTML into flattened searchable text with header offsets.
type Extractor interface {
	// Extract normalizes the page content. Structural blocks (date stamp,
	// title block, table of contents, tag list, postamble) are pruned before
	// flattening so they never appear in search text or offsets.
	Extract(html string) (*ExtractResult, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the document body at the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ManifestService retrieves the list of document URLs to index.
type ManifestService interface {
	// DiscoverURLs fetches the manifest at the given URL and returns the
	// document URLs it lists, in manifest order with relative entries
	// resolved against the manifest URL.
	DiscoverURLs(ctx context.Context, manifestURL string) ([]string, error)
}
