// Package index builds the in-memory document index. It coordinates manifest
// retrieval, concurrent fetching, and content extraction, producing the
// immutable document set the search controller publishes.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of in-flight document pipelines.
const DefaultConcurrency = 10

// Loader builds the document index from a manifest.
type Loader struct {
	Manifest    sitesearch.ManifestService
	Fetcher     sitesearch.Fetcher
	Extractor   sitesearch.Extractor
	Limiter     *DomainLimiter // optional politeness limiter
	Logger      *slog.Logger   // defaults to slog.Default()
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a load operation. Documents appear in manifest
// order; failed documents are excluded rather than aborting the batch.
type Result struct {
	Documents []*sitesearch.Document
	Loaded    int
	Failed    int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a load operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting load progress.
type ProgressFunc func(event ProgressEvent)

// loadResult holds the outcome of processing a single manifest URL.
type loadResult struct {
	position int
	url      string
	doc      *sitesearch.Document
	err      error
}

// Load fetches the manifest, runs the fetch+extract pipeline concurrently for
// every listed URL, and returns the completed index. A manifest failure fails
// the load; a single document's failure only excludes that document. The
// progress callback, if provided, receives events as loading proceeds.
func (l *Loader) Load(ctx context.Context, manifestURL string, progress ProgressFunc) (*Result, error) {
	urls, err := l.Manifest.DiscoverURLs(ctx, manifestURL)
	if err != nil {
		return nil, fmt.Errorf("manifest discovery: %w", err)
	}

	// Manifests occasionally repeat entries; index each URL once.
	seen := bloom.NewFilter(uint(len(urls))+1, 0.0001)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen.Test(u) {
			continue
		}
		seen.Add(u)
		unique = append(unique, u)
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan loadResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			i, u := i, u
			g.Go(func() error {
				doc, err := l.loadOne(gctx, u)
				resultCh <- loadResult{position: i, url: u, doc: doc, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	ordered := make([]loadResult, total)
	completed := 0
	failed := 0
	for r := range resultCh {
		completed++
		ordered[r.position] = r
		if r.err != nil {
			failed++
			l.logger().Warn("document load failed",
				"url", r.url,
				"err", r.err,
			)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, URL: r.url, Error: r.err})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, URL: r.url})
		}
	}

	result := &Result{Failed: failed}
	for _, r := range ordered {
		if r.err != nil || r.doc == nil {
			continue
		}
		result.Documents = append(result.Documents, r.doc)
	}
	result.Loaded = len(result.Documents)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	}

	return result, nil
}

// loadOne runs the full pipeline for one document URL.
func (l *Loader) loadOne(ctx context.Context, docURL string) (*sitesearch.Document, error) {
	if l.Limiter != nil {
		if host := hostOf(docURL); host != "" {
			if err := l.Limiter.Wait(ctx, host); err != nil {
				return nil, err
			}
		}
	}

	delays := l.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, docURL, l.Fetcher.Fetch, l.logger(), delays)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	res, err := l.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	doc := &sitesearch.Document{
		ID:          uuid.New().String(),
		URL:         docURL,
		Title:       res.Title,
		Text:        res.Text,
		Headers:     res.Headers,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(res.Text)),
		FetchedAt:   time.Now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// hostOf returns the host component of a URL, or empty if unparsable.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
