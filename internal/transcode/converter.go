// Package transcode converts downloaded videos to browser-friendly MP4
// containers using an external ffmpeg binary. Every conversion is
// best-effort: when ffmpeg is missing, fails or times out the caller keeps
// the original file.
package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"telegram-media-downloader/pkg/models"
)

// DefaultTimeout bounds a single ffmpeg invocation
const DefaultTimeout = 300 * time.Second

// Converter shells out to ffmpeg to remux videos into MP4 containers. The
// video stream is copied untouched; only audio is re-encoded, so typical
// conversions finish in seconds.
type Converter struct {
	ffmpegPath string
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a converter around the given ffmpeg binary. An empty path
// means "ffmpeg" resolved through PATH; a zero timeout means DefaultTimeout.
func New(ffmpegPath string, timeout time.Duration) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Converter{
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
		logger:     slog.Default(),
	}
}

// Available reports whether the ffmpeg binary can be resolved
func (c *Converter) Available() bool {
	_, err := exec.LookPath(c.ffmpegPath)
	return err == nil
}

// ConvertToMP4 remuxes inputPath into an MP4 next to it and deletes the
// original on success. On any failure the original file is left untouched
// and its path is returned along with the error, so callers can always use
// the returned path.
func (c *Converter) ConvertToMP4(ctx context.Context, inputPath string) (string, error) {
	if strings.EqualFold(filepath.Ext(inputPath), ".mp4") {
		return inputPath, nil
	}
	if !c.Available() {
		return inputPath, models.NewTranscodeError(fmt.Errorf("ffmpeg not found: %s", c.ffmpegPath))
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp4"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-i", inputPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "192k",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		// ffmpeg may leave a partial output file behind
		os.Remove(outputPath)
		if ctx.Err() == context.DeadlineExceeded {
			return inputPath, models.NewTranscodeError(fmt.Errorf("ffmpeg timed out after %s", c.timeout))
		}
		return inputPath, models.NewTranscodeError(fmt.Errorf("ffmpeg failed: %w: %s", err, tail(output)))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return inputPath, models.NewTranscodeError(fmt.Errorf("ffmpeg produced no output: %w", err))
	}

	if err := os.Remove(inputPath); err != nil {
		c.logger.Warn("Could not remove original after conversion", "path", inputPath, "error", err)
	}

	c.logger.Debug("Converted video",
		"input", inputPath,
		"output", outputPath,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return outputPath, nil
}

// tail returns the last few lines of ffmpeg output, where the actual error
// message lives.
func tail(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return strings.Join(lines, " | ")
}
