package downloader

import (
	"sync"
	"time"

	"telegram-media-downloader/pkg/models"
)

// Tracker holds the live progress record of every item in the current batch,
// keyed by message ID. Downloader goroutines write concurrently with the
// orchestrator's polling reads, so access goes through a lock. Records in a
// terminal state are never mutated again.
type Tracker struct {
	mu      sync.RWMutex
	records map[int]*models.ProgressRecord
}

// NewTracker creates an empty tracker for one batch
func NewTracker() *Tracker {
	return &Tracker{
		records: make(map[int]*models.ProgressRecord),
	}
}

// Add creates the queued record for an item
func (t *Tracker) Add(id int, name string, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[id] = &models.ProgressRecord{
		Name:   name,
		Total:  total,
		Status: models.StatusQueued,
	}
}

// SetDownloading marks the item's transfer as started
func (t *Tracker) SetDownloading(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.records[id]; ok && !r.Status.Terminal() {
		r.Status = models.StatusDownloading
	}
}

// Update records transfer progress. The byte total is raised when the
// transport reports more data than was declared, preserving the
// downloaded <= total invariant.
func (t *Tracker) Update(id int, downloaded, total int64, speed float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[id]
	if !ok || r.Status.Terminal() {
		return
	}
	r.Downloaded = downloaded
	if total > r.Total {
		r.Total = total
	}
	if downloaded > r.Total {
		r.Total = downloaded
	}
	r.Speed = speed
}

// SetConverting marks the item as undergoing video conversion
func (t *Tracker) SetConverting(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.records[id]; ok && !r.Status.Terminal() {
		r.Status = models.StatusConverting
	}
}

// Complete finalizes the record as a success
func (t *Tracker) Complete(id int, path string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[id]
	if !ok || r.Status.Terminal() {
		return
	}
	r.Status = models.StatusCompleted
	r.Path = path
	r.Elapsed = elapsed
	r.Speed = 0
}

// Fail finalizes the record as a failure with a human-readable reason
func (t *Tracker) Fail(id int, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[id]
	if !ok {
		t.records[id] = &models.ProgressRecord{Status: models.StatusError, Error: reason}
		return
	}
	if r.Status.Terminal() {
		return
	}
	r.Status = models.StatusError
	r.Error = reason
	r.Speed = 0
}

// Get returns a copy of one record
func (t *Tracker) Get(id int) (models.ProgressRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.records[id]
	if !ok {
		return models.ProgressRecord{}, false
	}
	return *r, true
}

// Snapshot returns a copy of every record, safe to read while downloads run
func (t *Tracker) Snapshot() map[int]models.ProgressRecord {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make(map[int]models.ProgressRecord, len(t.records))
	for id, r := range t.records {
		snapshot[id] = *r
	}
	return snapshot
}

// Counts returns how many records are in each terminal state
func (t *Tracker) Counts() (completed, failed int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.records {
		switch r.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusError:
			failed++
		}
	}
	return completed, failed
}
