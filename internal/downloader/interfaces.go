package downloader

import (
	"context"

	"telegram-media-downloader/pkg/models"
)

// Transcoder defines the video conversion operation used after a successful
// transfer
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type Transcoder interface {
	// ConvertToMP4 converts the file best-effort and returns the path to
	// use from now on, which is the input path when conversion was skipped
	// or failed.
	ConvertToMP4(ctx context.Context, inputPath string) (string, error)
}

// HistoryStore records finished batch summaries
type HistoryStore interface {
	RecordBatch(ctx context.Context, channel, topic string, summary *models.BatchSummary) error
}
