package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.ManifestService = (*ManifestService)(nil)

// ManifestService is a mock implementation of sitesearch.ManifestService.
type ManifestService struct {
	DiscoverURLsFn func(ctx context.Context, manifestURL string) ([]string, error)
}

func (s *ManifestService) DiscoverURLs(ctx context.Context, manifestURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, manifestURL)
}
