package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"telegram-media-downloader/internal/archive"
	"telegram-media-downloader/internal/config"
	"telegram-media-downloader/internal/downloader"
	"telegram-media-downloader/internal/history"
	"telegram-media-downloader/internal/telegram"
	"telegram-media-downloader/internal/transcode"
	"telegram-media-downloader/pkg/models"
)

type cliFlags struct {
	channel     string
	ids         string
	kinds       string
	topic       string
	zipName     string
	concurrency int
	limit       int
	listTopics  bool
	listOnly    bool
	historyN    int
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		if hint, ok := failureHint(err); ok {
			fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(1)
	}
}

// failureHint maps fatal error kinds to a user-actionable next step
func failureHint(err error) (string, bool) {
	switch models.KindOf(err) {
	case models.ErrorKindAuthorization:
		return "The session is not authorized or was revoked. Run the authenticate command and try again.", true
	case models.ErrorKindResolution:
		return "Check the channel link or username, and that your account can see the channel.", true
	}
	return "", false
}

func run() error {
	var flags cliFlags
	flag.StringVar(&flags.channel, "channel", "", "channel link, @username or numeric id (required)")
	flag.StringVar(&flags.ids, "ids", "", "message ids to download, e.g. 12,15,20-25 (default: all media)")
	flag.StringVar(&flags.kinds, "kinds", "", "restrict media kinds, e.g. photo,video,pdf")
	flag.StringVar(&flags.topic, "topic", "", "forum topic title or numeric id")
	flag.StringVar(&flags.zipName, "zip", "", "bundle the batch into downloads/<name>.zip instead of a folder")
	flag.IntVar(&flags.concurrency, "concurrency", 0, "concurrent downloads (default: from config)")
	flag.IntVar(&flags.limit, "limit", 0, "max messages to scan (default: from config)")
	flag.BoolVar(&flags.listTopics, "list-topics", false, "list the channel's forum topics and exit")
	flag.BoolVar(&flags.listOnly, "list", false, "list matching media messages and exit")
	flag.IntVar(&flags.historyN, "history", 0, "show the N most recent batches and exit")
	flag.Parse()

	if flags.channel == "" && flag.NArg() > 0 {
		flags.channel = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(cfg.LogLevel)

	if flags.historyN > 0 {
		return printHistory(cfg, flags.historyN)
	}
	if flags.channel == "" {
		flag.Usage()
		return fmt.Errorf("missing -channel")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, stop, err := telegram.Connect(ctx, cfg.APIID, cfg.APIHash, cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer stop()

	return execute(ctx, cfg, client, flags)
}

func execute(ctx context.Context, cfg *config.Config, client telegram.Client, flags cliFlags) error {
	ref, linkTopicID, err := telegram.ParseChannelURL(flags.channel)
	if err != nil {
		return err
	}

	channel, err := client.ResolveChannel(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to resolve channel: %w", err)
	}
	slog.Info("Resolved channel", "title", channel.Title, "forum", channel.Forum)

	if flags.listTopics {
		return printTopics(ctx, client, channel)
	}

	topicID, topicName, err := resolveTopic(ctx, client, channel, flags.topic, linkTopicID)
	if err != nil {
		return err
	}

	limit := flags.limit
	if limit <= 0 {
		limit = cfg.FetchLimit
	}

	messageIDs, err := selectMessages(ctx, client, channel, flags, topicID, limit)
	if err != nil {
		return err
	}
	if len(messageIDs) == 0 {
		return fmt.Errorf("no matching media messages")
	}

	if flags.listOnly {
		return printMessages(ctx, client, channel, messageIDs)
	}

	return download(ctx, cfg, client, channel, flags, messageIDs, topicName)
}

// selectMessages turns the -ids/-kinds flags into a concrete ordered id list
func selectMessages(ctx context.Context, client telegram.Client, channel *telegram.Channel, flags cliFlags, topicID, limit int) ([]int, error) {
	kinds, err := parseKinds(flags.kinds)
	if err != nil {
		return nil, err
	}

	if flags.ids != "" {
		ids, err := parseMessageIDs(flags.ids)
		if err != nil {
			return nil, err
		}
		if len(kinds) == 0 {
			return ids, nil
		}
		// Kind filter still applies to an explicit id list
		messages, err := client.GetMessages(ctx, channel, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages: %w", err)
		}
		var filtered []int
		for _, msg := range messages {
			if msg != nil && msg.HasMedia() && kinds[msg.Kind] {
				filtered = append(filtered, msg.ID)
			}
		}
		return filtered, nil
	}

	messages, err := client.ListMessages(ctx, channel, limit, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var ids []int
	for _, msg := range messages {
		if !msg.HasMedia() {
			continue
		}
		if len(kinds) > 0 && !kinds[msg.Kind] {
			continue
		}
		ids = append(ids, msg.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

func download(ctx context.Context, cfg *config.Config, client telegram.Client, channel *telegram.Channel, flags cliFlags, messageIDs []int, topicName string) error {
	opts := downloader.Options{
		BasePath:      cfg.DownloadsPath,
		ConvertVideos: cfg.ConvertVideos,
		SizeTolerance: cfg.SizeTolerance,
		PollInterval:  cfg.PollInterval,
		Transcoder:    transcode.New(cfg.FFmpegPath, cfg.TranscodeTimeout),
	}

	if cfg.HistoryDatabase != "" {
		db, err := history.New(cfg.HistoryDatabase)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		opts.History = db
	}

	fetcher := downloader.NewFetcher(client, opts)

	concurrency := flags.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	req := downloader.BatchRequest{
		ChannelRef:  telegram.ChannelRef{ID: channel.ID, Username: channel.Username},
		MessageIDs:  messageIDs,
		TopicName:   topicName,
		Concurrency: concurrency,
		OnProgress:  printProgress,
	}

	// Zip export stages the batch in a scratch folder first
	var zipPath string
	if flags.zipName != "" {
		staging, err := os.MkdirTemp("", "tmd-zip-*")
		if err != nil {
			return fmt.Errorf("failed to create staging folder: %w", err)
		}
		defer os.RemoveAll(staging)
		req.Folder = staging
		zipPath = archive.NormalizeZipName(flags.zipName)
	}

	summary, err := fetcher.FetchBatch(ctx, req)
	if err != nil {
		return err
	}
	fmt.Println()

	if zipPath != "" && summary.Succeeded > 0 {
		dest := filepath.Join(cfg.DownloadsPath, zipPath)
		count, size, err := archive.CreateFromDir(dest, req.Folder)
		if err != nil {
			return fmt.Errorf("failed to create archive: %w", err)
		}
		summary.Folder = dest
		slog.Info("Created archive", "path", dest, "entries", count, "size", models.FormatSize(size))
	}

	printSummary(summary)
	if summary.Succeeded == 0 && summary.Failed > 0 {
		return fmt.Errorf("all %d downloads failed", summary.Failed)
	}
	return nil
}

func resolveTopic(ctx context.Context, client telegram.Client, channel *telegram.Channel, topicFlag string, linkTopicID int) (int, string, error) {
	if topicFlag == "" && linkTopicID == 0 {
		return 0, "", nil
	}
	if !channel.Forum {
		return 0, "", fmt.Errorf("channel %q has no topics", channel.Title)
	}

	topics, err := client.ListTopics(ctx, channel)
	if err != nil {
		return 0, "", fmt.Errorf("failed to list topics: %w", err)
	}

	if topicFlag != "" {
		if id, err := strconv.Atoi(topicFlag); err == nil {
			for _, t := range topics {
				if t.ID == id {
					return t.ID, t.Title, nil
				}
			}
			return 0, "", fmt.Errorf("no topic with id %d", id)
		}
		for _, t := range topics {
			if strings.EqualFold(t.Title, topicFlag) {
				return t.ID, t.Title, nil
			}
		}
		return 0, "", fmt.Errorf("no topic named %q", topicFlag)
	}

	for _, t := range topics {
		if t.ID == linkTopicID {
			return t.ID, t.Title, nil
		}
	}
	return 0, "", fmt.Errorf("no topic with id %d", linkTopicID)
}

func printTopics(ctx context.Context, client telegram.Client, channel *telegram.Channel) error {
	topics, err := client.ListTopics(ctx, channel)
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		fmt.Println("No topics.")
		return nil
	}
	for _, t := range topics {
		fmt.Printf("%6d  %s\n", t.ID, t.Title)
	}
	return nil
}

func printMessages(ctx context.Context, client telegram.Client, channel *telegram.Channel, ids []int) error {
	messages, err := client.GetMessages(ctx, channel, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}
	for _, msg := range messages {
		if msg == nil || !msg.HasMedia() {
			continue
		}
		fmt.Printf("%8d  %-8s  %10s  %s\n",
			msg.ID, msg.Kind, models.FormatSize(msg.Size), msg.Filename)
	}
	return nil
}

// printProgress redraws a single status line on every poll tick
func printProgress(records map[int]models.ProgressRecord, completed, total int) {
	var active int
	var speed float64
	for _, r := range records {
		if r.Status == models.StatusDownloading || r.Status == models.StatusConverting {
			active++
			speed += r.Speed
		}
	}
	fmt.Printf("\r%d/%d done, %d active, %s    ", completed, total, active, models.FormatSpeed(speed))
}

func printHistory(cfg *config.Config, limit int) error {
	if cfg.HistoryDatabase == "" {
		return fmt.Errorf("HISTORY_DATABASE_PATH is not configured")
	}
	db, err := history.New(cfg.HistoryDatabase)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	records, err := db.RecentBatches(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No batches recorded.")
		return nil
	}
	for _, r := range records {
		topic := r.Topic
		if topic != "" {
			topic = " / " + topic
		}
		fmt.Printf("%s  %s%s  %d ok, %d failed, %s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Channel, topic,
			r.Succeeded, r.Failed,
			models.FormatDuration(float64(r.ElapsedMs)/1000), r.Folder)
	}
	return nil
}

func printSummary(summary *models.BatchSummary) {
	fmt.Printf("Downloaded %d/%d files to %s\n", summary.Succeeded, summary.Total, summary.Folder)
	if summary.Succeeded > 0 {
		fmt.Printf("Total time %s, average %s per file\n",
			models.FormatDuration(summary.TotalElapsed.Seconds()),
			models.FormatDuration(summary.AvgElapsed.Seconds()))
	}
	for _, failure := range summary.Failures {
		fmt.Printf("  failed: %s (%s)\n", failure.Name, failure.Reason)
	}
}

// parseMessageIDs expands "12,15,20-25" into an ordered id list
func parseMessageIDs(spec string) ([]int, error) {
	var ids []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, found := strings.Cut(part, "-")
		if !found {
			hi = lo
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid message id %q", part)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid message id range %q", part)
		}
		if end < start {
			return nil, fmt.Errorf("invalid message id range %q", part)
		}
		for id := start; id <= end; id++ {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no message ids in %q", spec)
	}
	return ids, nil
}

// parseKinds turns "photo,video" into a kind filter set
func parseKinds(spec string) (map[models.MediaKind]bool, error) {
	if spec == "" {
		return nil, nil
	}
	known := map[string]models.MediaKind{
		"photo":    models.KindPhoto,
		"video":    models.KindVideo,
		"audio":    models.KindAudio,
		"document": models.KindDocument,
		"pdf":      models.KindPDF,
		"zip":      models.KindZip,
		"other":    models.KindOther,
	}
	kinds := make(map[models.MediaKind]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		kind, ok := known[part]
		if !ok {
			return nil, fmt.Errorf("unknown media kind %q", part)
		}
		kinds[kind] = true
	}
	return kinds, nil
}

// setupLogging configures structured logging based on the log level
func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
