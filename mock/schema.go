package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.SchemaService = (*SchemaService)(nil)

// SchemaService is a mock implementation of siteaudit.SchemaService.
type SchemaService struct {
	ValidateFn func(ctx context.Context, html string) (*siteaudit.SchemaReport, error)
}

func (s *SchemaService) Validate(ctx context.Context, html string) (*siteaudit.SchemaReport, error) {
	return s.ValidateFn(ctx, html)
}
