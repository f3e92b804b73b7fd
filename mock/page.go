package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.PageService = (*PageService)(nil)

// PageService is a mock implementation of siteaudit.PageService.
type PageService struct {
	FetchPageFn func(ctx context.Context, req siteaudit.PageRequest) (*siteaudit.Page, error)
}

func (s *PageService) FetchPage(ctx context.Context, req siteaudit.PageRequest) (*siteaudit.Page, error) {
	return s.FetchPageFn(ctx, req)
}
