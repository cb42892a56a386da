// Package sitesearch provides in-memory full-text search over a static
// collection of HTML documents. It fetches a manifest of document URLs,
// flattens each document's content into canonical searchable text while
// mapping section headers to character offsets, and answers queries with
// highlighted context snippets that deep-link to the nearest preceding
// header.
//
// This package contains domain types, interfaces, and the pure search
// algorithms following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, http/).
package sitesearch
