package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"telegram-media-downloader/internal/telegram"
	"telegram-media-downloader/pkg/models"
)

// downloadItem fetches one item's media body into folder, verifies it,
// optionally transcodes it and finalizes the tracker record. Errors never
// escape: every failure is recorded on the item's ProgressRecord so sibling
// downloads keep running.
func (f *Fetcher) downloadItem(ctx context.Context, channel *telegram.Channel, msg *telegram.Message, item models.DownloadItem, folder string, tracker *Tracker) {
	id := item.MessageID
	provisional := ItemFileName(item)
	start := time.Now()

	tracker.SetDownloading(id)

	progress := func(downloaded, total int64) {
		elapsed := time.Since(start).Seconds()
		var speed float64
		if elapsed > 0 {
			speed = float64(downloaded) / elapsed
		}
		tracker.Update(id, downloaded, total, speed)
	}

	storedPath, err := f.client.DownloadMedia(ctx, channel, msg, folder, progress)
	if err != nil {
		tracker.Fail(id, err.Error())
		f.logger.Warn("Download failed", "message_id", id, "name", item.Name, "error", err)
		return
	}
	if storedPath == "" {
		tracker.Fail(id, "file not saved")
		return
	}

	finalPath := f.renameIntoPlace(storedPath, provisional, folder, id)

	info, err := os.Stat(finalPath)
	if err != nil {
		tracker.Fail(id, fmt.Sprintf("downloaded file missing: %s", err))
		return
	}
	if item.Size > 0 && float64(info.Size()) < f.sizeTolerance*float64(item.Size) {
		tracker.Fail(id, fmt.Sprintf("incomplete download: %s / %s",
			models.FormatSize(info.Size()), models.FormatSize(item.Size)))
		return
	}

	if f.convertVideos && item.Kind == models.KindVideo && f.transcoder != nil {
		tracker.SetConverting(id)
		converted, err := f.transcoder.ConvertToMP4(ctx, finalPath)
		if err != nil {
			// Conversion is best-effort: keep the untranscoded file
			f.logger.Warn("Video conversion failed, keeping original", "path", finalPath, "error", err)
		}
		if converted != "" {
			finalPath = converted
		}
	}

	tracker.Complete(id, finalPath, time.Since(start))
	f.logger.Debug("Download completed", "message_id", id, "path", finalPath)
}

// renameIntoPlace reconciles the provisional name with the extension the
// transport actually stored and renames with overwrite semantics. A rename
// failure keeps the transport's name rather than failing the item.
func (f *Fetcher) renameIntoPlace(storedPath, provisional, folder string, id int) string {
	finalName := ReconcileExtension(provisional, filepath.Ext(storedPath))
	finalPath := filepath.Join(folder, finalName)
	if storedPath == finalPath {
		return finalPath
	}

	if _, err := os.Stat(finalPath); err == nil {
		if err := os.Remove(finalPath); err != nil {
			f.logger.Warn("Could not remove existing file", "path", finalPath, "error", err)
		}
	}
	if err := os.Rename(storedPath, finalPath); err != nil {
		f.logger.Warn("Could not rename download, keeping transport name",
			"message_id", id, "from", storedPath, "to", finalPath, "error", err)
		return storedPath
	}
	return finalPath
}
