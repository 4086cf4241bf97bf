package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"telegram-media-downloader/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordBatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	summary := &models.BatchSummary{
		BatchID:      "batch-1",
		Total:        5,
		Succeeded:    4,
		Failed:       1,
		TotalElapsed: 12 * time.Second,
		Folder:       "downloads/My_Channel",
		Failures: []models.FailureReason{
			{Name: "file3.jpg", Reason: "connection reset"},
		},
	}
	require.NoError(t, db.RecordBatch(ctx, "My Channel", "Movies", summary))

	records, err := db.RecentBatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "batch-1", records[0].BatchID)
	require.Equal(t, "My Channel", records[0].Channel)
	require.Equal(t, "Movies", records[0].Topic)
	require.Equal(t, 5, records[0].Total)
	require.Equal(t, 4, records[0].Succeeded)
	require.Equal(t, 1, records[0].Failed)
	require.Equal(t, int64(12000), records[0].ElapsedMs)
	require.Equal(t, "downloads/My_Channel", records[0].Folder)
	require.False(t, records[0].CreatedAt.IsZero())

	failures, err := db.BatchFailures(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, failures, 1)
	require.Equal(t, "file3.jpg", failures[0].Name)
	require.Equal(t, "connection reset", failures[0].Reason)
}

func TestRecordBatch_DuplicateID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	summary := &models.BatchSummary{BatchID: "batch-1", Total: 1, Succeeded: 1}
	require.NoError(t, db.RecordBatch(ctx, "ch", "", summary))
	require.Error(t, db.RecordBatch(ctx, "ch", "", summary))
}

func TestRecentBatches_OrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i, id := range []string{"old", "mid", "new"} {
		summary := &models.BatchSummary{BatchID: id, Total: i + 1}
		require.NoError(t, db.RecordBatch(ctx, "ch", "", summary))
		// keep created_at values distinct
		time.Sleep(5 * time.Millisecond)
	}

	records, err := db.RecentBatches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "new", records[0].BatchID)
	require.Equal(t, "mid", records[1].BatchID)
}

func TestRecentBatches_Empty(t *testing.T) {
	db := newTestDB(t)

	records, err := db.RecentBatches(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestBatchFailures_None(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	summary := &models.BatchSummary{BatchID: "clean", Total: 2, Succeeded: 2}
	require.NoError(t, db.RecordBatch(ctx, "ch", "", summary))

	failures, err := db.BatchFailures(ctx, "clean")
	require.NoError(t, err)
	require.Empty(t, failures)
}
