package mock

import (
	"context"

	"github.com/mkowalczyk/siteaudit"
)

var _ siteaudit.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of siteaudit.HistoryService.
type HistoryService struct {
	SaveSnapshotFn    func(ctx context.Context, snapshot *siteaudit.ScoreSnapshot) error
	RecentSnapshotsFn func(ctx context.Context, url string, limit int) ([]siteaudit.ScoreSnapshot, error)
}

func (s *HistoryService) SaveSnapshot(ctx context.Context, snapshot *siteaudit.ScoreSnapshot) error {
	return s.SaveSnapshotFn(ctx, snapshot)
}

func (s *HistoryService) RecentSnapshots(ctx context.Context, url string, limit int) ([]siteaudit.ScoreSnapshot, error) {
	return s.RecentSnapshotsFn(ctx, url, limit)
}
