package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateFromDir(t *testing.T) {
	sourceDir := t.TempDir()
	files := map[string]string{
		"001_photo.jpg": "jpeg bytes",
		"002_clip.mp4":  "mp4 bytes",
		"003_doc.pdf":   "pdf bytes",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, name), []byte(body), 0o644))
	}
	// Subdirectories are not archived
	require.NoError(t, os.Mkdir(filepath.Join(sourceDir, "nested"), 0o755))

	zipPath := filepath.Join(t.TempDir(), "exports", "batch.zip")
	count, size, err := CreateFromDir(zipPath, sourceDir)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Positive(t, size)

	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 3)
	// Entries stay in numbered order
	require.Equal(t, "001_photo.jpg", r.File[0].Name)
	require.Equal(t, "002_clip.mp4", r.File[1].Name)
	require.Equal(t, "003_doc.pdf", r.File[2].Name)

	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		require.Equal(t, files[f.Name], string(body))
	}
}

func TestCreateFromDir_EmptySource(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "batch.zip")
	_, _, err := CreateFromDir(zipPath, t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no files to archive")

	// No partial archive left behind
	_, statErr := os.Stat(zipPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestCreateFromDir_MissingSource(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "batch.zip")
	_, _, err := CreateFromDir(zipPath, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestNormalizeZipName(t *testing.T) {
	require.Equal(t, "batch.zip", NormalizeZipName("batch"))
	require.Equal(t, "batch.zip", NormalizeZipName("batch.zip"))
	require.Equal(t, "batch.ZIP", NormalizeZipName("batch.ZIP"))
}
