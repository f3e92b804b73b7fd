package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.GeoService = (*GeoService)(nil)

// GeoService is a mock implementation of siteaudit.GeoService.
type GeoService struct {
	LookupFn func(ctx context.Context, req siteaudit.GeoRequest) (*siteaudit.GeoLocation, error)
}

func (s *GeoService) Lookup(ctx context.Context, req siteaudit.GeoRequest) (*siteaudit.GeoLocation, error) {
	return s.LookupFn(ctx, req)
}
