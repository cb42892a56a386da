// Package goquery provides a CSS-selector-based implementation of
// sitesearch.Extractor. It selects a page's content root, prunes structural
// blocks from a copy of the subtree, flattens the remainder into canonical
// searchable text, and locates each heading's offset within that text.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesearch.Extractor at compile time.
var _ sitesearch.Extractor = (*Extractor)(nil)

// Selectors addresses the structural parts of a page the extractor needs.
type Selectors struct {
	// ContentRoot selects the element holding the page's content.
	ContentRoot string

	// TitleLink selects the anchor carrying the display title.
	TitleLink string

	// Structural selects the non-prose blocks pruned before flattening, so
	// they never appear in search text or offsets.
	Structural []string
}

// DefaultSelectors returns the selector set for the default blog layout.
func DefaultSelectors() Selectors {
	return Selectors{
		ContentRoot: "#content",
		TitleLink:   ".post-title a",
		Structural: []string{
			".post-date",
			".post-title",
			".table-of-contents",
			".post-tags",
			".postamble",
		},
	}
}

// Extractor extracts flattened searchable text and header offsets from HTML.
type Extractor struct {
	selectors Selectors
	logger    *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the default layout selectors.
func WithSelectors(s Selectors) Option {
	return func(e *Extractor) {
		e.selectors = s
	}
}

// WithLogger sets the logger for extraction diagnostics.
// Defaults to slog.Default() if not specified.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		selectors: DefaultSelectors(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Extract normalizes the page content into flattened text with header
// offsets. Pruning happens on a clone of the content subtree; both the
// flattened text and the headers are computed from the pruned clone, so
// pruned blocks can never contribute text or shift offsets.
func (e *Extractor) Extract(rawHTML string) (*sitesearch.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse HTML: %v", err)
	}

	root := doc.Find(e.selectors.ContentRoot).First()
	if root.Length() == 0 {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "content root %q not found", e.selectors.ContentRoot)
	}

	title := flattenSelection(root.Find(e.selectors.TitleLink).First())

	pruned := root.Clone()
	for _, sel := range e.selectors.Structural {
		pruned.Find(sel).Remove()
	}

	text := flattenSelection(pruned)

	var headers []sitesearch.HeaderRef
	pruned.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		id := sel.AttrOr("id", "")
		headerText := flattenSelection(sel)

		offset := sitesearch.OffsetUnresolved
		if headerText != "" {
			offset = strings.Index(text, headerText)
		}
		if offset == sitesearch.OffsetUnresolved {
			e.logger.Warn("header text not found in flattened text",
				"header", headerText,
				"id", id,
			)
		}

		headers = append(headers, sitesearch.HeaderRef{
			ID:     id,
			Text:   headerText,
			Offset: offset,
		})
	})

	return &sitesearch.ExtractResult{
		Title:   title,
		Text:    text,
		Headers: headers,
	}, nil
}

// flattenSelection returns the whitespace-collapsed text of a selection.
func flattenSelection(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		flatten(n, &sb)
	}
	return sitesearch.CollapseSpace(sb.String())
}

// blockTags are elements that contribute a whitespace boundary when
// flattening, so adjacent blocks never fuse into a single word.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "div": true, "dl": true, "dd": true, "dt": true,
	"figcaption": true, "figure": true, "footer": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// flatten walks the node tree writing raw text into sb. Script and style
// contents are skipped; block-level elements contribute surrounding
// whitespace. The caller collapses whitespace afterwards.
func flatten(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
		if blockTags[n.Data] {
			sb.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, sb)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteByte(' ')
	}
}
