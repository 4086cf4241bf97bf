// Package downloader implements the batch download orchestration engine:
// deterministic item naming, live progress tracking, windowed concurrent
// transfers and final batch accounting.
package downloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"telegram-media-downloader/internal/telegram"
	"telegram-media-downloader/pkg/models"
)

// sequenceWidth is the zero-padding width of the ordering prefix, chosen so
// lexicographic listing matches batch order for batches up to 999 items.
const sequenceWidth = 3

// fileNameSanitizer strips characters that are illegal on common filesystems
var fileNameSanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// ItemFileName derives the deterministic local file name for an item:
// a zero-padded 1-indexed sequence prefix, the declared name, and a
// guaranteed extension inferred from the media kind when the name has none.
func ItemFileName(item models.DownloadItem) string {
	name := item.Name
	if name == "" {
		name = fmt.Sprintf("file_%d", item.MessageID)
	}

	if filepath.Ext(name) == "" {
		ext := item.Extension
		if ext == "" {
			ext = telegram.ExtensionForKind(item.Kind)
		}
		name += ext
	}

	prefixed := fmt.Sprintf("%0*d_%s", sequenceWidth, item.Sequence+1, name)
	return fileNameSanitizer.Replace(prefixed)
}

// ReconcileExtension swaps the provisional name's extension for the one the
// transport actually stored, which may differ from the declared one.
func ReconcileExtension(name, actualExt string) string {
	if actualExt == "" || strings.HasSuffix(name, actualExt) {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + actualExt
}

// SanitizeFolderName makes a channel title or topic name safe to use as a
// directory name.
func SanitizeFolderName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return fileNameSanitizer.Replace(name)
}
