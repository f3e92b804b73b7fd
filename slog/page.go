package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkowalczyk/siteaudit"
)

// Ensure LoggingPageService implements siteaudit.PageService.
var _ siteaudit.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with debug logging.
type LoggingPageService struct {
	next   siteaudit.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next siteaudit.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// FetchPage delegates to the wrapped service and logs the fetch.
func (s *LoggingPageService) FetchPage(ctx context.Context, req siteaudit.PageRequest) (page *siteaudit.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.URL,
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs, "status", page.StatusCode, "bytes", len(page.HTML))
		}
		s.logger.Debug("page fetch", attrs...)
	}(time.Now())
	return s.next.FetchPage(ctx, req)
}
