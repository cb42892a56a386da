package main

import (
	"context"
	"io"

	"github.com/fwojciec/sitesearch/index"
)

// Dependencies holds the services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Loader *index.Loader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Search SearchCmd `cmd:"" help:"Index a manifest and search its documents"`
	List   ListCmd   `cmd:"" help:"Index a manifest and list its documents"`

	Verbose     bool `short:"v" help:"Enable verbose logging"`
	Concurrency int  `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Manifest string   `arg:"" help:"Manifest URL (JSON array or sitemap)"`
	Query    []string `arg:"" help:"Search query"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Manifest string `arg:"" help:"Manifest URL (JSON array or sitemap)"`
}
