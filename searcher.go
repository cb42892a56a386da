package sitesearch

import "sync/atomic"

// Searcher is the search controller. It owns the published document index
// and answers each query event with a freshly computed result list. Queries
// arriving before the index is published see an empty index and return no
// results; the index is installed with a single atomic assignment and is
// read-only afterwards, so no locking is needed on the query path.
type Searcher struct {
	docs atomic.Pointer[[]*Document]
}

// NewSearcher returns a Searcher with no index published yet.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Publish installs the loaded document set as the index. The documents must
// not be mutated after publication.
func (s *Searcher) Publish(docs []*Document) {
	s.docs.Store(&docs)
}

// Documents returns the published index, or nil before publication.
func (s *Searcher) Documents() []*Document {
	if p := s.docs.Load(); p != nil {
		return *p
	}
	return nil
}

// Search runs one query event: filter the index, extract snippets for each
// matching document, and return results in index order. Queries shorter than
// MinQueryLength short-circuit to ShowOriginal without touching the index.
// Results are computed fresh on every call and never cached.
func (s *Searcher) Search(query string) *Response {
	resp := &Response{Query: query}
	if len([]rune(query)) < MinQueryLength {
		resp.ShowOriginal = true
		return resp
	}
	for _, doc := range s.Documents() {
		if !Matches(doc, query) {
			continue
		}
		resp.Results = append(resp.Results, &SearchResult{
			Document:         doc,
			HighlightedTitle: HighlightTitle(doc.Title, query),
			Snippets:         ExtractSnippets(doc.Text, query, doc.Headers),
		})
	}
	return resp
}
