package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkowalczyk/siteaudit"
)

// Compile-time interface verification.
var _ siteaudit.HistoryService = (*HistoryService)(nil)

// HistoryService implements siteaudit.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// SaveSnapshot persists a score snapshot, assigning it an ID and timestamp.
func (s *HistoryService) SaveSnapshot(ctx context.Context, snapshot *siteaudit.ScoreSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, url, strategy, score, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, snapshot.ID, snapshot.URL, string(snapshot.Strategy), snapshot.Score,
		snapshot.CreatedAt.Format(time.RFC3339))

	return err
}

// RecentSnapshots returns up to limit snapshots for the URL, most recent first.
func (s *HistoryService) RecentSnapshots(ctx context.Context, url string, limit int) ([]siteaudit.ScoreSnapshot, error) {
	if limit <= 0 {
		return nil, siteaudit.Errorf(siteaudit.EINVALID, "history limit must be positive")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, strategy, score, created_at
		FROM snapshots
		WHERE url = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, url, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []siteaudit.ScoreSnapshot
	for rows.Next() {
		var snapshot siteaudit.ScoreSnapshot
		var strategy, createdAt string

		if err := rows.Scan(&snapshot.ID, &snapshot.URL, &strategy, &snapshot.Score, &createdAt); err != nil {
			return nil, err
		}

		snapshot.Strategy = siteaudit.Strategy(strategy)
		snapshot.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
