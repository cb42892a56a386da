package main

import "fmt"

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	result, err := deps.Loader.Load(deps.Ctx, c.Manifest, nil)
	if err != nil {
		return err
	}

	if len(result.Documents) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents indexed.")
		return nil
	}

	for _, d := range result.Documents {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%d headers, %d chars)\n", d.URL, d.Title, len(d.Headers), len(d.Text))
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d document(s) failed to load\n", result.Failed)
	}

	return nil
}
