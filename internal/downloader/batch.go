package downloader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"telegram-media-downloader/internal/telegram"
	"telegram-media-downloader/pkg/models"
)

const (
	// DefaultConcurrency bounds in-flight transfers when the caller does
	// not say otherwise.
	DefaultConcurrency = 3
	// MaxConcurrency is the hard ceiling on window size
	MaxConcurrency = 10
	// DefaultPollInterval is the progress reporting cadence
	DefaultPollInterval = 300 * time.Millisecond
	// DefaultSizeTolerance accepts downloads at least this fraction of the
	// declared size.
	DefaultSizeTolerance = 0.95
)

// PollFunc receives a progress snapshot on every poll tick
type PollFunc func(records map[int]models.ProgressRecord, completed, total int)

// Options configures a Fetcher
type Options struct {
	BasePath      string // root downloads folder
	ConvertVideos bool
	SizeTolerance float64       // 0 means DefaultSizeTolerance
	PollInterval  time.Duration // 0 means DefaultPollInterval
	Transcoder    Transcoder    // nil disables conversion
	History       HistoryStore  // nil disables batch history
}

// BatchRequest describes one caller-initiated download batch
type BatchRequest struct {
	ChannelRef  telegram.ChannelRef
	MessageIDs  []int
	TopicName   string // "" or "General" means no topic subfolder
	Concurrency int    // 0 means DefaultConcurrency
	Folder      string // optional override of the derived folder layout
	OnProgress  PollFunc
}

// Fetcher drives batches of concurrent downloads against the platform client
type Fetcher struct {
	client        telegram.Client
	transcoder    Transcoder
	history       HistoryStore
	logger        *slog.Logger
	basePath      string
	convertVideos bool
	sizeTolerance float64
	pollInterval  time.Duration
}

// NewFetcher creates a batch fetcher around an authenticated client
func NewFetcher(client telegram.Client, opts Options) *Fetcher {
	if opts.SizeTolerance <= 0 {
		opts.SizeTolerance = DefaultSizeTolerance
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.BasePath == "" {
		opts.BasePath = "downloads"
	}
	return &Fetcher{
		client:        client,
		transcoder:    opts.Transcoder,
		history:       opts.History,
		logger:        slog.Default(),
		basePath:      opts.BasePath,
		convertVideos: opts.ConvertVideos,
		sizeTolerance: opts.SizeTolerance,
		pollInterval:  opts.PollInterval,
	}
}

// queuedItem pairs a resolved message with its immutable batch input
type queuedItem struct {
	msg  *telegram.Message
	item models.DownloadItem
}

// FetchBatch downloads the requested messages' media into the derived folder
// with bounded concurrency and returns the final accounting. Setup failures
// (resolution, authorization) are returned; per-item failures are recorded in
// the summary and never abort sibling downloads.
func (f *Fetcher) FetchBatch(ctx context.Context, req BatchRequest) (*models.BatchSummary, error) {
	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}

	channel, err := f.client.ResolveChannel(ctx, req.ChannelRef)
	if err != nil {
		return nil, fmt.Errorf("resolve channel: %w", err)
	}

	folder := req.Folder
	if folder == "" {
		folder = f.BatchFolder(channel.Title, req.TopicName)
	}

	// Resolve all metadata once before any transfer; sequence numbers
	// follow the originally requested id order, not completion order.
	messages, err := f.client.GetMessages(ctx, channel, req.MessageIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve messages: %w", err)
	}

	queue := make([]queuedItem, 0, len(messages))
	for idx, msg := range messages {
		if msg == nil || !msg.HasMedia() {
			continue
		}
		queue = append(queue, queuedItem{msg: msg, item: msg.Item(idx)})
	}

	batchID := uuid.New().String()
	f.logger.Info("Starting batch download",
		"batch_id", batchID,
		"channel", channel.Title,
		"topic", req.TopicName,
		"items", len(queue),
		"concurrency", concurrency,
		"folder", folder)

	tracker := NewTracker()
	for _, q := range queue {
		tracker.Add(q.item.MessageID, q.item.Name, q.item.Size)
	}

	batchStart := time.Now()
	for start := 0; start < len(queue); start += concurrency {
		end := start + concurrency
		if end > len(queue) {
			end = len(queue)
		}
		f.runWindow(ctx, channel, queue[start:end], folder, tracker, len(queue), req.OnProgress)
	}

	summary := f.summarize(batchID, tracker, queue, folder)
	if req.OnProgress != nil {
		req.OnProgress(tracker.Snapshot(), summary.Succeeded+summary.Failed, len(queue))
	}

	f.logger.Info("Batch download finished",
		"batch_id", batchID,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed", time.Since(batchStart).Round(time.Millisecond))

	if f.history != nil {
		if err := f.history.RecordBatch(ctx, channel.Title, req.TopicName, summary); err != nil {
			f.logger.Warn("Failed to record batch history", "batch_id", batchID, "error", err)
		}
	}

	return summary, nil
}

// runWindow launches one goroutine per item, polls the tracker at a fixed
// cadence for reporting, and joins every task before returning so the next
// window never overlaps this one.
func (f *Fetcher) runWindow(ctx context.Context, channel *telegram.Channel, window []queuedItem, folder string, tracker *Tracker, total int, onProgress PollFunc) {
	var wg sync.WaitGroup
	for _, q := range window {
		wg.Add(1)
		go func(q queuedItem) {
			defer wg.Done()
			defer func() {
				// A panicking item must not take its siblings down
				if r := recover(); r != nil {
					tracker.Fail(q.item.MessageID, fmt.Sprintf("panic: %v", r))
				}
			}()
			f.downloadItem(ctx, channel, q.msg, q.item, folder, tracker)
		}(q)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			f.reportProgress(tracker, total, onProgress)
			return
		case <-ticker.C:
			f.reportProgress(tracker, total, onProgress)
		}
	}
}

// reportProgress emits one aggregate progress tick
func (f *Fetcher) reportProgress(tracker *Tracker, total int, onProgress PollFunc) {
	snapshot := tracker.Snapshot()

	var active int
	var totalSpeed float64
	var completed int
	for _, r := range snapshot {
		switch r.Status {
		case models.StatusDownloading:
			active++
			totalSpeed += r.Speed
		case models.StatusConverting:
			active++
		case models.StatusCompleted, models.StatusError:
			completed++
		}
	}

	if active > 0 {
		f.logger.Debug("Batch progress",
			"completed", fmt.Sprintf("%d/%d", completed, total),
			"active", active,
			"speed", models.FormatSpeed(totalSpeed))
	}

	if onProgress != nil {
		onProgress(snapshot, completed, total)
	}
}

// summarize computes the final batch accounting from the tracker's terminal
// records.
func (f *Fetcher) summarize(batchID string, tracker *Tracker, queue []queuedItem, folder string) *models.BatchSummary {
	snapshot := tracker.Snapshot()

	summary := &models.BatchSummary{
		BatchID: batchID,
		Total:   len(queue),
		Folder:  folder,
	}

	var totalElapsed time.Duration
	for _, q := range queue {
		r, ok := snapshot[q.item.MessageID]
		if !ok {
			continue
		}
		switch r.Status {
		case models.StatusCompleted:
			if r.Path != "" {
				summary.Succeeded++
				totalElapsed += r.Elapsed
			}
		case models.StatusError:
			summary.Failed++
			summary.Failures = append(summary.Failures, models.FailureReason{
				Name:   r.Name,
				Reason: r.Error,
			})
		}
	}

	summary.TotalElapsed = totalElapsed
	if summary.Succeeded > 0 {
		summary.AvgElapsed = totalElapsed / time.Duration(summary.Succeeded)
	}
	return summary
}

// BatchFolder derives the destination folder for a channel and optional
// topic: downloads/<channel>/[<topic>/]. The General bucket gets no
// subfolder.
func (f *Fetcher) BatchFolder(channelTitle, topicName string) string {
	folder := filepath.Join(f.basePath, SanitizeFolderName(channelTitle))
	if topicName != "" && topicName != telegram.GeneralTopic {
		folder = filepath.Join(folder, SanitizeFolderName(topicName))
	}
	return folder
}
