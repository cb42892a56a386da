package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitesearch"
)

// Ensure ManifestService implements sitesearch.ManifestService.
var _ sitesearch.ManifestService = (*ManifestService)(nil)

// ManifestService retrieves the document URL list over HTTP. Two manifest
// formats are supported: a JSON array of URL strings and a sitemap <urlset>
// document. Relative entries are resolved against the manifest URL, and
// duplicates are removed preserving manifest order.
type ManifestService struct {
	client *http.Client
}

// NewManifestService creates a new ManifestService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewManifestService(client *http.Client) *ManifestService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ManifestService{client: client}
}

// DiscoverURLs fetches and parses the manifest at manifestURL.
func (s *ManifestService) DiscoverURLs(ctx context.Context, manifestURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(manifestURL)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid manifest URL %q: %v", manifestURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid manifest URL %q: %v", manifestURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, sitesearch.Errorf(sitesearch.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, manifestURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	entries, err := parseManifest(body)
	if err != nil {
		return nil, err
	}

	// Resolve relative entries and deduplicate preserving order.
	seen := make(map[string]bool)
	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		ref, err := url.Parse(entry)
		if err != nil {
			return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid manifest entry %q: %v", entry, err)
		}
		resolved := base.ResolveReference(ref).String()
		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		urls = append(urls, resolved)
	}

	return urls, nil
}

// parseManifest decodes the manifest body. A body whose first non-space byte
// is '<' is treated as a sitemap; anything else must be a JSON URL array.
func parseManifest(body []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return parseSitemap(trimmed)
	}

	var urls []string
	if err := json.Unmarshal(trimmed, &urls); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "manifest is neither a JSON URL array nor a sitemap: %v", err)
	}
	return urls, nil
}

// parseSitemap extracts <loc> entries from a sitemap <urlset> document.
func parseSitemap(body []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse sitemap: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "urlset" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "sitemap root element must be <urlset>")
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
