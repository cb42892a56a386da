package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// Run executes the search command. A manifest failure degrades to an empty
// index rather than aborting, so the command still answers with no results.
func (c *SearchCmd) Run(deps *Dependencies) error {
	searcher := sitesearch.NewSearcher()

	result, err := deps.Loader.Load(deps.Ctx, c.Manifest, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", err)
		searcher.Publish(nil)
	} else {
		searcher.Publish(result.Documents)
		if result.Failed > 0 {
			fmt.Fprintf(deps.Stderr, "warning: %d document(s) failed to load\n", result.Failed)
		}
	}

	resp := searcher.Search(strings.Join(c.Query, " "))
	if resp.ShowOriginal {
		fmt.Fprintf(deps.Stdout, "Query %q is too short; showing original content.\n", resp.Query)
		return nil
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	for _, r := range resp.Results {
		fmt.Fprintf(deps.Stdout, "%s\n  %s\n", r.HighlightedTitle, r.Document.URL)
		for _, s := range r.Snippets {
			target := r.Document.URL
			if s.AnchorID != "" {
				target += "#" + s.AnchorID
			}
			fmt.Fprintf(deps.Stdout, "  %s\n    -> %s\n", s.HighlightedText, target)
		}
	}

	return nil
}
