package telegram

import (
	"context"
)

// ProgressFunc receives transfer progress during a media download. It must
// be cheap and must not block; the transport invokes it on every chunk.
type ProgressFunc func(downloaded, total int64)

// Client defines the messaging-platform operations used by the downloader
//
//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
type Client interface {
	// ResolveChannel resolves a username or numeric reference to a channel
	ResolveChannel(ctx context.Context, ref ChannelRef) (*Channel, error)

	// ListMessages returns up to limit media messages, newest first. A
	// non-zero topicID restricts the listing to that forum topic.
	ListMessages(ctx context.Context, channel *Channel, limit, topicID int) ([]*Message, error)

	// GetMessages fetches the given message IDs, preserving request order.
	// IDs that no longer exist or carry no media yield nil entries.
	GetMessages(ctx context.Context, channel *Channel, ids []int) ([]*Message, error)

	// ListTopics enumerates the channel's forum topics
	ListTopics(ctx context.Context, channel *Channel) ([]Topic, error)

	// DownloadMedia transfers the message's media body into dir under a
	// transport-chosen name and returns the stored path. The progress
	// callback, when non-nil, receives (bytes so far, bytes total).
	DownloadMedia(ctx context.Context, channel *Channel, msg *Message, dir string, progress ProgressFunc) (string, error)
}
