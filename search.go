package sitesearch

import (
	"regexp"
	"sort"
	"strings"
)

// Search tuning constants, fixed by design: a context window of 30 characters
// each side of a match, and a minimum query length of 2 characters below
// which the original content is shown instead of results.
const (
	ContextRadius  = 30
	MinQueryLength = 2
)

// Highlight markers wrapped around query occurrences in snippets and titles.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Ellipsis prefixes/suffixes a snippet clipped out of a longer text.
const ellipsis = "…"

// Snippet is one highlighted context window around a query occurrence.
type Snippet struct {
	// HighlightedText is the sanitized window with query occurrences wrapped
	// in <mark> tags and ellipses applied at clipped boundaries.
	HighlightedText string `json:"highlightedText"`

	// AnchorID is the id of the nearest header preceding the occurrence, or
	// empty when no resolved header precedes it.
	AnchorID string `json:"anchorId"`
}

// SearchResult pairs a matching document with its highlighted title and
// context snippets. Snippets may be empty when only the title matched.
type SearchResult struct {
	Document         *Document `json:"document"`
	HighlightedTitle string    `json:"highlightedTitle"`
	Snippets         []Snippet `json:"snippets"`
}

// Response is what the controller hands to the presentation layer for one
// query event.
type Response struct {
	Query   string          `json:"query"`
	Results []*SearchResult `json:"results"`

	// ShowOriginal signals that the query was too short to search and the
	// underlying content should be displayed instead of results.
	ShowOriginal bool `json:"showOriginal"`
}

// CollapseSpace collapses every run of whitespace (including newlines) into a
// single space and trims the ends. It is idempotent.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Matches reports whether the document matches the query: a case-insensitive
// literal substring test against the title and, independently, the body text.
// The empty query never matches. Minimum-length policy belongs to the caller.
func Matches(doc *Document, query string) bool {
	if query == "" {
		return false
	}
	re := literalPattern(query)
	return re.MatchString(doc.Title) || re.MatchString(doc.Text)
}

// literalPattern compiles a case-insensitive matcher for the query with every
// metacharacter escaped: substring search, not pattern search.
func literalPattern(query string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
}

// sanitizeRe matches characters a raw document could use to inject markup
// into a rendered snippet: angle brackets and markdown emphasis.
var sanitizeRe = regexp.MustCompile("[<>*_~`]")

// ExtractSnippets scans text for non-overlapping occurrences of query and
// returns one highlighted context snippet per occurrence, in left-to-right
// order. The scan cursor advances past each emitted window, so a later
// occurrence that falls inside an earlier window is skipped rather than
// producing overlapping snippets.
func ExtractSnippets(text, query string, headers []HeaderRef) []Snippet {
	if query == "" || text == "" {
		return nil
	}
	re := literalPattern(query)
	anchors := resolvedAnchors(headers)

	var snippets []Snippet
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		i := pos + loc[0]
		matchLen := loc[1] - loc[0]

		start := max(i-ContextRadius, 0)
		end := min(i+matchLen+ContextRadius, len(text))

		// Widen to the surrounding whitespace so the window never splits a word.
		for start > 0 && !isSpace(text[start-1]) {
			start--
		}
		for end < len(text) && !isSpace(text[end]) {
			end++
		}

		window := CollapseSpace(text[start:end])
		sanitized := CollapseSpace(sanitizeRe.ReplaceAllString(window, ""))

		// Re-match against the sanitized window: sanitization may have
		// destroyed the occurrence, and a snippet without a visible
		// highlight must not be emitted.
		highlighted := re.ReplaceAllString(sanitized, markOpen+"$0"+markClose)
		if highlighted != sanitized {
			if start > 0 {
				highlighted = ellipsis + highlighted
			}
			if end < len(text) {
				highlighted += ellipsis
			}
			snippets = append(snippets, Snippet{
				HighlightedText: highlighted,
				AnchorID:        nearestAnchor(anchors, i),
			})
		}

		pos = end
	}
	return snippets
}

// HighlightTitle wraps query occurrences in the title with highlight markers.
// The title is returned unchanged when it does not contain the query.
func HighlightTitle(title, query string) string {
	if query == "" {
		return title
	}
	return literalPattern(query).ReplaceAllString(title, markOpen+"$0"+markClose)
}

// anchorPoint is a resolved header position used for nearest-predecessor
// lookup.
type anchorPoint struct {
	offset int
	id     string
}

// resolvedAnchors returns the resolved headers sorted by ascending offset.
// Headers arrive in document order, which normally coincides with offset
// order; sorting makes the binary search in nearestAnchor safe either way.
func resolvedAnchors(headers []HeaderRef) []anchorPoint {
	anchors := make([]anchorPoint, 0, len(headers))
	for _, h := range headers {
		if h.Resolved() {
			anchors = append(anchors, anchorPoint{offset: h.Offset, id: h.ID})
		}
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].offset < anchors[j].offset })
	return anchors
}

// nearestAnchor returns the id of the last anchor whose offset is <= i, or
// empty when no anchor precedes i.
func nearestAnchor(anchors []anchorPoint, i int) string {
	n := sort.Search(len(anchors), func(j int) bool { return anchors[j].offset > i })
	if n == 0 {
		return ""
	}
	return anchors[n-1].id
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
