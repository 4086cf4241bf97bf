package telegram

import (
	"fmt"
	"path/filepath"
	"strings"

	"telegram-media-downloader/pkg/models"
)

var (
	videoExtensions = map[string]bool{".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".webm": true}
	audioExtensions = map[string]bool{".mp3": true, ".m4a": true, ".wav": true, ".ogg": true}
)

// ExtensionForMime maps a document mime type to the extension used when the
// declared filename carries none.
func ExtensionForMime(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "video"):
		return ".mp4"
	case strings.Contains(mimeType, "audio"):
		return ".mp3"
	case strings.Contains(mimeType, "application/pdf"):
		return ".pdf"
	case strings.Contains(mimeType, "application/zip"):
		return ".zip"
	case strings.HasPrefix(mimeType, "image/"):
		return ".jpg"
	default:
		return ""
	}
}

// ExtensionForKind maps a media kind to a default extension
func ExtensionForKind(kind models.MediaKind) string {
	switch kind {
	case models.KindPhoto:
		return ".jpg"
	case models.KindVideo:
		return ".mp4"
	case models.KindAudio:
		return ".mp3"
	case models.KindPDF:
		return ".pdf"
	case models.KindZip:
		return ".zip"
	default:
		return ""
	}
}

// classifyDocument decides a document's media kind from its mime type and
// filename extension.
func classifyDocument(mimeType, ext string) models.MediaKind {
	ext = strings.ToLower(ext)
	switch {
	case strings.Contains(mimeType, "video") || videoExtensions[ext]:
		return models.KindVideo
	case strings.Contains(mimeType, "audio") || audioExtensions[ext]:
		return models.KindAudio
	case strings.Contains(mimeType, "application/pdf") || ext == ".pdf":
		return models.KindPDF
	case strings.Contains(mimeType, "application/zip") || ext == ".zip":
		return models.KindZip
	default:
		return models.KindDocument
	}
}

// fallbackName generates a display name for media without a declared
// filename, keeping the message ID so names stay unique within a channel.
func fallbackName(kind models.MediaKind, id int, ext string) string {
	switch kind {
	case models.KindPhoto:
		return fmt.Sprintf("photo_%d%s", id, ext)
	case models.KindVideo:
		return fmt.Sprintf("video_%d%s", id, ext)
	default:
		return fmt.Sprintf("document_%d%s", id, ext)
	}
}

// extensionOf returns the lower-cased filename extension, or "" when absent
func extensionOf(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
