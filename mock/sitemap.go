package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of siteaudit.SitemapService.
type SitemapService struct {
	DiscoverFn func(ctx context.Context, req siteaudit.SitemapRequest) (*siteaudit.Sitemap, error)
}

func (s *SitemapService) Discover(ctx context.Context, req siteaudit.SitemapRequest) (*siteaudit.Sitemap, error) {
	return s.DiscoverFn(ctx, req)
}
