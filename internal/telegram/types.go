// Package telegram provides the messaging-platform client used to resolve
// channels, list media messages and transfer media bodies.
package telegram

import (
	"time"

	"github.com/gotd/td/tg"

	"telegram-media-downloader/pkg/models"
)

// GeneralTopic is the bucket for messages that do not belong to a named
// forum topic.
const GeneralTopic = "General"

// ChannelRef identifies a channel either by username or by its full
// -100-prefixed numeric ID, as parsed from a URL or entered directly.
type ChannelRef struct {
	Username string
	ID       int64
}

// IsZero reports whether the reference is empty
func (r ChannelRef) IsZero() bool {
	return r.Username == "" && r.ID == 0
}

// Channel is a resolved channel entity
type Channel struct {
	ID         int64
	AccessHash int64
	Title      string
	Username   string
	Forum      bool
}

// Topic is one forum topic within a channel
type Topic struct {
	ID    int
	Title string
}

// Message is a media-bearing channel message. The unexported fields hold the
// transport-level handles needed to download the media body.
type Message struct {
	ID        int
	Date      time.Time
	Kind      models.MediaKind
	Size      int64
	MimeType  string
	Filename  string
	Extension string
	TopicID   int // reply_to_top_id, zero when unthreaded

	photo      *tg.Photo
	photoThumb string
	document   *tg.Document
}

// HasMedia reports whether the message carries a downloadable media body
func (m *Message) HasMedia() bool {
	return m != nil && m.Kind != ""
}

// Item converts the message into an immutable batch input at the given
// zero-based sequence position.
func (m *Message) Item(sequence int) models.DownloadItem {
	return models.DownloadItem{
		MessageID: m.ID,
		Name:      m.Filename,
		Kind:      m.Kind,
		Size:      m.Size,
		MimeType:  m.MimeType,
		Extension: m.Extension,
		Sequence:  sequence,
	}
}
