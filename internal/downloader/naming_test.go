package downloader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"telegram-media-downloader/pkg/models"
)

func TestItemFileName(t *testing.T) {
	tests := []struct {
		name string
		item models.DownloadItem
		want string
	}{
		{
			name: "plain document",
			item: models.DownloadItem{MessageID: 1, Name: "report.pdf", Extension: ".pdf", Kind: models.KindPDF, Sequence: 0},
			want: "001_report.pdf",
		},
		{
			name: "sequence is one-indexed and zero-padded",
			item: models.DownloadItem{MessageID: 2, Name: "clip.mp4", Extension: ".mp4", Kind: models.KindVideo, Sequence: 11},
			want: "012_clip.mp4",
		},
		{
			name: "missing extension appended from declared",
			item: models.DownloadItem{MessageID: 3, Name: "notes", Extension: ".txt", Kind: models.KindDocument, Sequence: 2},
			want: "003_notes.txt",
		},
		{
			name: "missing extension inferred from kind",
			item: models.DownloadItem{MessageID: 4, Name: "snapshot", Kind: models.KindPhoto, Sequence: 3},
			want: "004_snapshot.jpg",
		},
		{
			name: "empty name falls back to message id",
			item: models.DownloadItem{MessageID: 55, Kind: models.KindVideo, Sequence: 4},
			want: "005_file_55.mp4",
		},
		{
			name: "illegal characters replaced",
			item: models.DownloadItem{MessageID: 6, Name: `a/b\c:d*e?f"g<h>i|j.bin`, Extension: ".bin", Kind: models.KindDocument, Sequence: 5},
			want: "006_a_b_c_d_e_f_g_h_i_j.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemFileName(tt.item)
			require.Equal(t, tt.want, got)

			// Deterministic: same inputs, same output
			require.Equal(t, got, ItemFileName(tt.item))

			require.NotContains(t, got, "/")
			require.NotContains(t, got, "\\")
			require.NotContains(t, got, ":")
			require.Contains(t, got, ".")
		})
	}
}

func TestItemFileName_SequencePreservation(t *testing.T) {
	names := []string{"a.jpg", "b.jpg", "c.jpg"}
	for i, n := range names {
		got := ItemFileName(models.DownloadItem{MessageID: i + 100, Name: n, Kind: models.KindPhoto, Sequence: i})
		require.True(t, strings.HasPrefix(got, []string{"001_", "002_", "003_"}[i]))
	}
}

func TestReconcileExtension(t *testing.T) {
	require.Equal(t, "001_clip.mp4", ReconcileExtension("001_clip.mp4", ".mp4"))
	require.Equal(t, "001_clip.webm", ReconcileExtension("001_clip.mp4", ".webm"))
	require.Equal(t, "001_photo.jpg", ReconcileExtension("001_photo", ".jpg"))
	require.Equal(t, "001_clip.mp4", ReconcileExtension("001_clip.mp4", ""))
}

func TestSanitizeFolderName(t *testing.T) {
	require.Equal(t, "My_Channel", SanitizeFolderName("My Channel"))
	require.Equal(t, "Movies_2024", SanitizeFolderName("Movies 2024"))
	require.Equal(t, "a_b_c", SanitizeFolderName("a/b:c"))
}
