package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingManifestService implements sitesearch.ManifestService.
var _ sitesearch.ManifestService = (*LoggingManifestService)(nil)

// LoggingManifestService wraps a ManifestService with debug logging.
type LoggingManifestService struct {
	next   sitesearch.ManifestService
	logger *slog.Logger
}

// NewLoggingManifestService creates a new LoggingManifestService.
func NewLoggingManifestService(next sitesearch.ManifestService, logger *slog.Logger) *LoggingManifestService {
	return &LoggingManifestService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingManifestService) DiscoverURLs(ctx context.Context, manifestURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manifest discovery",
			"url", manifestURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, manifestURL)
}
