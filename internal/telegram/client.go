package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"telegram-media-downloader/pkg/models"
)

// pageSize is the per-request message limit imposed by the API
const pageSize = 100

// GotdClient implements Client on top of the gotd MTProto client
type GotdClient struct {
	api    *tg.Client
	logger *slog.Logger
}

// StopFunc disconnects the client and waits for its run loop to exit
type StopFunc func()

// Connect opens the MTProto connection using the persisted session file and
// verifies the session is authorized. The returned StopFunc must be called
// to tear the connection down.
func Connect(ctx context.Context, apiID int, apiHash, sessionFile string) (*GotdClient, StopFunc, error) {
	client := telegram.NewClient(apiID, apiHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: sessionFile},
	})

	runCtx, cancel := context.WithCancel(ctx)
	ready := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := client.Run(runCtx, func(ctx context.Context) error {
			status, err := client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("auth status: %w", err)
			}
			if !status.Authorized {
				return models.NewAuthorizationError(errors.New("session is not authorized, run the authenticate command first"))
			}
			ready <- nil
			<-ctx.Done()
			return ctx.Err()
		})
		if err != nil {
			select {
			case ready <- err:
			default:
			}
		}
	}()

	select {
	case err := <-ready:
		if err != nil {
			cancel()
			<-done
			return nil, nil, err
		}
	case <-ctx.Done():
		cancel()
		<-done
		return nil, nil, ctx.Err()
	}

	stop := func() {
		cancel()
		<-done
	}

	return &GotdClient{api: client.API(), logger: slog.Default()}, stop, nil
}

// ResolveChannel resolves a username or numeric reference to a channel
func (c *GotdClient) ResolveChannel(ctx context.Context, ref ChannelRef) (*Channel, error) {
	if ref.Username != "" {
		peer, err := c.api.ContactsResolveUsername(ctx, ref.Username)
		if err != nil {
			return nil, classify(err, fmt.Sprintf("resolve channel %q", ref.Username), models.NewResolutionError)
		}
		for _, chat := range peer.Chats {
			if ch, ok := chat.(*tg.Channel); ok {
				return channelFromTG(ch), nil
			}
		}
		return nil, models.NewResolutionError(fmt.Errorf("%q is not a channel", ref.Username))
	}

	chats, err := c.api.ChannelsGetChannels(ctx, []tg.InputChannelClass{
		&tg.InputChannel{ChannelID: bareChannelID(ref.ID)},
	})
	if err != nil {
		return nil, classify(err, fmt.Sprintf("resolve channel %d", ref.ID), models.NewResolutionError)
	}
	for _, chat := range chats.GetChats() {
		if ch, ok := chat.(*tg.Channel); ok {
			return channelFromTG(ch), nil
		}
	}
	return nil, models.NewResolutionError(fmt.Errorf("channel %d not found", ref.ID))
}

// ListMessages returns up to limit media messages, newest first
func (c *GotdClient) ListMessages(ctx context.Context, channel *Channel, limit, topicID int) ([]*Message, error) {
	peer := inputPeer(channel)

	var out []*Message
	offsetID := 0
	for len(out) < limit {
		page := limit - len(out)
		if page > pageSize {
			page = pageSize
		}

		var res tg.MessagesMessagesClass
		var err error
		if topicID > 0 {
			res, err = c.api.MessagesGetReplies(ctx, &tg.MessagesGetRepliesRequest{
				Peer:     peer,
				MsgID:    topicID,
				OffsetID: offsetID,
				Limit:    page,
			})
		} else {
			res, err = c.api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
				Peer:     peer,
				OffsetID: offsetID,
				Limit:    page,
			})
		}
		if err != nil {
			return nil, classify(err, "list messages", models.NewTransferError)
		}

		raw, err := messagesOf(res)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			break
		}

		for _, rm := range raw {
			if msg := messageFromTG(rm); msg != nil {
				out = append(out, msg)
			}
		}
		offsetID = raw[len(raw)-1].GetID()
	}

	return out, nil
}

// GetMessages fetches the given message IDs, preserving request order
func (c *GotdClient) GetMessages(ctx context.Context, channel *Channel, ids []int) ([]*Message, error) {
	byID := make(map[int]*Message, len(ids))

	// The API caps each request, so chunk the id list
	for start := 0; start < len(ids); start += pageSize {
		end := start + pageSize
		if end > len(ids) {
			end = len(ids)
		}

		inputs := make([]tg.InputMessageClass, 0, end-start)
		for _, id := range ids[start:end] {
			inputs = append(inputs, &tg.InputMessageID{ID: id})
		}

		res, err := c.api.ChannelsGetMessages(ctx, &tg.ChannelsGetMessagesRequest{
			Channel: inputChannel(channel),
			ID:      inputs,
		})
		if err != nil {
			return nil, classify(err, "get messages", models.NewTransferError)
		}

		raw, err := messagesOf(res)
		if err != nil {
			return nil, err
		}
		for _, rm := range raw {
			if msg := messageFromTG(rm); msg != nil {
				byID[msg.ID] = msg
			}
		}
	}

	out := make([]*Message, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out, nil
}

// ListTopics enumerates the channel's forum topics
func (c *GotdClient) ListTopics(ctx context.Context, channel *Channel) ([]Topic, error) {
	if !channel.Forum {
		return nil, nil
	}

	res, err := c.api.ChannelsGetForumTopics(ctx, &tg.ChannelsGetForumTopicsRequest{
		Channel: inputChannel(channel),
		Limit:   pageSize,
	})
	if err != nil {
		return nil, classify(err, "list topics", models.NewTransferError)
	}

	topics := make([]Topic, 0, len(res.Topics))
	for _, t := range res.Topics {
		if ft, ok := t.(*tg.ForumTopic); ok {
			topics = append(topics, Topic{ID: ft.ID, Title: ft.Title})
		}
	}
	return topics, nil
}

// DownloadMedia streams the media body into dir under a transport-chosen
// unique name and returns the stored path.
func (c *GotdClient) DownloadMedia(ctx context.Context, channel *Channel, msg *Message, dir string, progress ProgressFunc) (string, error) {
	if msg.photo == nil && msg.document == nil {
		return "", models.NewTransferError(fmt.Errorf("message %d has no media", msg.ID))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewFilesystemError(fmt.Errorf("create folder %s: %w", dir, err))
	}

	var loc tg.InputFileLocationClass
	ext := msg.Extension
	switch {
	case msg.document != nil:
		loc = &tg.InputDocumentFileLocation{
			ID:            msg.document.ID,
			AccessHash:    msg.document.AccessHash,
			FileReference: msg.document.FileReference,
		}
		if ext == "" {
			ext = ExtensionForMime(msg.MimeType)
		}
	case msg.photo != nil:
		loc = &tg.InputPhotoFileLocation{
			ID:            msg.photo.ID,
			AccessHash:    msg.photo.AccessHash,
			FileReference: msg.photo.FileReference,
			ThumbSize:     msg.photoThumb,
		}
		ext = ".jpg"
	}

	// Message ID keeps concurrent transfers from clobbering each other;
	// the caller renames into its own scheme afterwards.
	path := filepath.Join(dir, fmt.Sprintf("media_%d%s", msg.ID, ext))
	file, err := os.Create(path)
	if err != nil {
		return "", models.NewFilesystemError(fmt.Errorf("create file %s: %w", path, err))
	}

	w := &progressWriter{w: file, total: msg.Size, progress: progress}
	if _, err := downloader.NewDownloader().Download(c.api, loc).Stream(ctx, w); err != nil {
		file.Close()
		os.Remove(path)
		return "", classify(err, fmt.Sprintf("download media %d", msg.ID), models.NewTransferError)
	}

	if err := file.Close(); err != nil {
		return "", models.NewFilesystemError(fmt.Errorf("close file %s: %w", path, err))
	}

	w.finish()
	return path, nil
}

// progressWriter counts written bytes and drives the progress callback.
// A panicking callback must never abort the transfer, so invocations are
// wrapped in a recover.
type progressWriter struct {
	w        io.Writer
	written  int64
	total    int64
	progress ProgressFunc
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	p.report(p.written)
	return n, err
}

// finish reports the final byte count so short declared sizes end at 100%
func (p *progressWriter) finish() {
	if p.written > p.total {
		p.total = p.written
	}
	p.report(p.written)
}

func (p *progressWriter) report(written int64) {
	if p.progress == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	p.progress(written, p.total)
}

// classify wraps API errors, promoting authorization failures to their own
// kind so the caller can tell the user to re-authenticate.
func classify(err error, op string, wrap func(error) error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	if tgerr.Is(err, "AUTH_KEY_UNREGISTERED", "SESSION_REVOKED", "SESSION_EXPIRED", "USER_DEACTIVATED") {
		return models.NewAuthorizationError(wrapped)
	}
	return wrap(wrapped)
}

// messagesOf unpacks the message container variants the API returns
func messagesOf(res tg.MessagesMessagesClass) ([]tg.MessageClass, error) {
	switch v := res.(type) {
	case *tg.MessagesMessages:
		return v.Messages, nil
	case *tg.MessagesMessagesSlice:
		return v.Messages, nil
	case *tg.MessagesChannelMessages:
		return v.Messages, nil
	default:
		return nil, models.NewTransferError(fmt.Errorf("unexpected messages response %T", res))
	}
}

func channelFromTG(ch *tg.Channel) *Channel {
	return &Channel{
		ID:         ch.ID,
		AccessHash: ch.AccessHash,
		Title:      ch.Title,
		Username:   ch.Username,
		Forum:      ch.Forum,
	}
}

func inputChannel(ch *Channel) *tg.InputChannel {
	return &tg.InputChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
}

func inputPeer(ch *Channel) *tg.InputPeerChannel {
	return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
}

// bareChannelID strips the -100 supergroup prefix from a full channel ID
func bareChannelID(id int64) int64 {
	if id >= 0 {
		return id
	}
	s := strconv.FormatInt(-id, 10)
	if strings.HasPrefix(s, "100") && len(s) > 3 {
		bare, err := strconv.ParseInt(s[3:], 10, 64)
		if err == nil {
			return bare
		}
	}
	return -id
}
