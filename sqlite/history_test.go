package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkowalczyk/siteaudit"
	"github.com/mkowalczyk/siteaudit/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestHistoryService_SaveSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("saves snapshot with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		snapshot := &siteaudit.ScoreSnapshot{
			URL:      "https://example.com/",
			Strategy: siteaudit.StrategyMobile,
			Score:    7.4,
		}

		err := svc.SaveSnapshot(ctx, snapshot)
		require.NoError(t, err)

		assert.NotEmpty(t, snapshot.ID, "ID should be generated")
		assert.False(t, snapshot.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("returns error for invalid snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		snapshot := &siteaudit.ScoreSnapshot{Score: 5} // missing URL

		err := svc.SaveSnapshot(ctx, snapshot)
		require.Error(t, err)
		assert.Equal(t, siteaudit.EINVALID, siteaudit.ErrorCode(err))
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		snapshot := &siteaudit.ScoreSnapshot{
			URL:   "https://example.com/",
			Score: 11,
		}

		err := svc.SaveSnapshot(ctx, snapshot)
		require.Error(t, err)
		assert.Equal(t, siteaudit.EINVALID, siteaudit.ErrorCode(err))
	})
}

func TestHistoryService_RecentSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("returns snapshots most recent first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		for i, score := range []float64{6.1, 6.8, 7.4} {
			snapshot := &siteaudit.ScoreSnapshot{
				URL:       "https://example.com/",
				Strategy:  siteaudit.StrategyMobile,
				Score:     score,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}
			require.NoError(t, svc.SaveSnapshot(ctx, snapshot))
		}

		snapshots, err := svc.RecentSnapshots(ctx, "https://example.com/", 10)
		require.NoError(t, err)
		require.Len(t, snapshots, 3)
		assert.Equal(t, 7.4, snapshots[0].Score)
		assert.Equal(t, 6.8, snapshots[1].Score)
		assert.Equal(t, 6.1, snapshots[2].Score)
	})

	t.Run("respects the limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			snapshot := &siteaudit.ScoreSnapshot{
				URL:       "https://example.com/",
				Score:     float64(i),
				CreatedAt: time.Date(2026, 8, 1, i, 0, 0, 0, time.UTC),
			}
			require.NoError(t, svc.SaveSnapshot(ctx, snapshot))
		}

		snapshots, err := svc.RecentSnapshots(ctx, "https://example.com/", 2)
		require.NoError(t, err)
		assert.Len(t, snapshots, 2)
	})

	t.Run("does not mix URLs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)
		ctx := context.Background()

		require.NoError(t, svc.SaveSnapshot(ctx, &siteaudit.ScoreSnapshot{URL: "https://a.example/", Score: 1}))
		require.NoError(t, svc.SaveSnapshot(ctx, &siteaudit.ScoreSnapshot{URL: "https://b.example/", Score: 2}))

		snapshots, err := svc.RecentSnapshots(ctx, "https://a.example/", 10)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, "https://a.example/", snapshots[0].URL)
	})

	t.Run("returns empty for unknown URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)

		snapshots, err := svc.RecentSnapshots(context.Background(), "https://unknown.example/", 10)
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewHistoryService(db)

		_, err := svc.RecentSnapshots(context.Background(), "https://example.com/", 0)
		require.Error(t, err)
		assert.Equal(t, siteaudit.EINVALID, siteaudit.ErrorCode(err))
	})
}
