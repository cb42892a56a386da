// Command sitesearch indexes a static site's documents from a manifest and
// searches them from the command line. It is a thin host around the core
// pipeline; all search semantics live in the sitesearch package.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/goquery"
	sshttp "github.com/fwojciec/sitesearch/http"
	"github.com/fwojciec/sitesearch/index"
	ssslog "github.com/fwojciec/sitesearch/slog"
)

// requestsPerSecond is the per-host politeness limit while loading.
const requestsPerSecond = 8.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used by the loader. Closed when Run returns.
	Fetcher sitesearch.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesearch --help' to see available commands")
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.Fetcher = ssslog.NewLoggingFetcher(sshttp.NewFetcher(), logger)
	defer m.Fetcher.Close()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Loader: &index.Loader{
			Manifest:    ssslog.NewLoggingManifestService(sshttp.NewManifestService(nil), logger),
			Fetcher:     m.Fetcher,
			Extractor:   goquery.NewExtractor(goquery.WithLogger(logger)),
			Limiter:     index.NewDomainLimiter(requestsPerSecond),
			Logger:      logger,
			Concurrency: cli.Concurrency,
		},
	}

	return kongCtx.Run(deps)
}
