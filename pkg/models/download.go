// Package models defines the data structures used throughout the application
package models

import (
	"time"
)

// DownloadStatus represents the lifecycle state of a single item download
type DownloadStatus string

const (
	StatusQueued      DownloadStatus = "queued"
	StatusDownloading DownloadStatus = "downloading"
	StatusConverting  DownloadStatus = "converting"
	StatusCompleted   DownloadStatus = "completed"
	StatusError       DownloadStatus = "error"
)

// Terminal reports whether no further state transitions are allowed
func (s DownloadStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// MediaKind classifies the media attached to a message
type MediaKind string

const (
	KindPhoto    MediaKind = "photo"
	KindVideo    MediaKind = "video"
	KindAudio    MediaKind = "audio"
	KindDocument MediaKind = "document"
	KindPDF      MediaKind = "pdf"
	KindZip      MediaKind = "zip"
	KindOther    MediaKind = "other"
)

// DownloadItem is one remote media-bearing message selected for download.
// Items are assembled once per batch and never mutated afterwards.
type DownloadItem struct {
	MessageID int       `json:"message_id"`
	Name      string    `json:"name"`
	Kind      MediaKind `json:"kind"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mime_type"`
	Extension string    `json:"extension"`
	Sequence  int       `json:"sequence"` // zero-based position in the requested id list
}

// ProgressRecord is the live status of one item, keyed by message ID.
// Each downloader goroutine writes only its own record; readers take
// copies through the tracker.
type ProgressRecord struct {
	Name       string         `json:"name"`
	Downloaded int64          `json:"downloaded"`
	Total      int64          `json:"total"`
	Speed      float64        `json:"speed"` // bytes per second
	Status     DownloadStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	Path       string         `json:"path,omitempty"`
	Elapsed    time.Duration  `json:"elapsed,omitempty"`
}

// FailureReason pairs a failed item's display name with its error message
type FailureReason struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchSummary is the final accounting for one batch call
type BatchSummary struct {
	BatchID      string          `json:"batch_id"`
	Total        int             `json:"total"`
	Succeeded    int             `json:"succeeded"`
	Failed       int             `json:"failed"`
	TotalElapsed time.Duration   `json:"total_elapsed"`
	AvgElapsed   time.Duration   `json:"avg_elapsed"`
	Failures     []FailureReason `json:"failures,omitempty"`
	Folder       string          `json:"folder"`
}

// BatchRecord is a persisted batch summary row
type BatchRecord struct {
	BatchID   string    `json:"batch_id"`
	Channel   string    `json:"channel"`
	Topic     string    `json:"topic"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
}
