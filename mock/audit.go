package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.AuditService = (*AuditService)(nil)

// AuditService is a mock implementation of siteaudit.AuditService.
type AuditService struct {
	AuditFn func(ctx context.Context, req siteaudit.AuditRequest) (*siteaudit.PerfAudit, error)
}

func (s *AuditService) Audit(ctx context.Context, req siteaudit.AuditRequest) (*siteaudit.PerfAudit, error) {
	return s.AuditFn(ctx, req)
}
