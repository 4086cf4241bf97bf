package downloader

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"telegram-media-downloader/pkg/models"
)

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker()
	tr.Add(1, "clip.mp4", 1000)

	r, ok := tr.Get(1)
	require.True(t, ok)
	require.Equal(t, models.StatusQueued, r.Status)
	require.Equal(t, int64(1000), r.Total)

	tr.SetDownloading(1)
	tr.Update(1, 500, 1000, 250)
	r, _ = tr.Get(1)
	require.Equal(t, models.StatusDownloading, r.Status)
	require.Equal(t, int64(500), r.Downloaded)
	require.Equal(t, float64(250), r.Speed)

	tr.SetConverting(1)
	r, _ = tr.Get(1)
	require.Equal(t, models.StatusConverting, r.Status)

	tr.Complete(1, "/tmp/001_clip.mp4", 2*time.Second)
	r, _ = tr.Get(1)
	require.Equal(t, models.StatusCompleted, r.Status)
	require.Equal(t, "/tmp/001_clip.mp4", r.Path)
	require.Equal(t, 2*time.Second, r.Elapsed)
}

func TestTracker_TerminalRecordsAreImmutable(t *testing.T) {
	tr := NewTracker()
	tr.Add(1, "a.jpg", 100)
	tr.Fail(1, "connection reset")

	tr.SetDownloading(1)
	tr.Update(1, 50, 100, 10)
	tr.SetConverting(1)
	tr.Complete(1, "/tmp/a.jpg", time.Second)
	tr.Fail(1, "other reason")

	r, _ := tr.Get(1)
	require.Equal(t, models.StatusError, r.Status)
	require.Equal(t, "connection reset", r.Error)
	require.Zero(t, r.Downloaded)
	require.Empty(t, r.Path)
}

func TestTracker_UpdateRaisesTotal(t *testing.T) {
	tr := NewTracker()
	tr.Add(1, "a.bin", 100)
	tr.SetDownloading(1)

	// Transport reports more data than was declared
	tr.Update(1, 150, 100, 1)
	r, _ := tr.Get(1)
	require.Equal(t, int64(150), r.Downloaded)
	require.GreaterOrEqual(t, r.Total, r.Downloaded)
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.Add(1, "a.jpg", 100)

	snap := tr.Snapshot()
	require.Len(t, snap, 1)

	entry := snap[1]
	entry.Downloaded = 999

	r, _ := tr.Get(1)
	require.Zero(t, r.Downloaded)
}

func TestTracker_Counts(t *testing.T) {
	tr := NewTracker()
	tr.Add(1, "a", 1)
	tr.Add(2, "b", 1)
	tr.Add(3, "c", 1)

	tr.Complete(1, "/tmp/a", time.Second)
	tr.Fail(2, "boom")

	completed, failed := tr.Counts()
	require.Equal(t, 1, completed)
	require.Equal(t, 1, failed)
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker()
	const items = 20

	var wg sync.WaitGroup
	for i := 1; i <= items; i++ {
		tr.Add(i, "item", 1000)
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tr.SetDownloading(id)
			for n := int64(0); n <= 1000; n += 100 {
				tr.Update(id, n, 1000, float64(n))
			}
			tr.Complete(id, "/tmp/item", time.Millisecond)
		}(i)
	}

	// Reader polls while writers run
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			tr.Snapshot()
			tr.Counts()
		}
	}()

	wg.Wait()
	<-done

	completed, failed := tr.Counts()
	require.Equal(t, items, completed)
	require.Zero(t, failed)
}
