// Package archive bundles a finished download batch into a single zip file
// so the whole batch can be fetched or shipped as one artifact.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CreateFromDir writes all regular files under sourceDir (top level only,
// ordered by name so numbered entries stay in sequence) into a deflate zip
// at zipPath. Returns the number of entries and the archive size. A partial
// archive is removed on failure.
func CreateFromDir(zipPath, sourceDir string) (int, int64, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return 0, 0, fmt.Errorf("reading source directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return 0, 0, fmt.Errorf("no files to archive in %s", sourceDir)
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return 0, 0, fmt.Errorf("creating archive directory: %w", err)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return 0, 0, fmt.Errorf("creating archive: %w", err)
	}

	count, err := writeEntries(out, sourceDir, names)
	if err != nil {
		out.Close()
		os.Remove(zipPath)
		return 0, 0, err
	}
	if err := out.Close(); err != nil {
		os.Remove(zipPath)
		return 0, 0, fmt.Errorf("closing archive: %w", err)
	}

	info, err := os.Stat(zipPath)
	if err != nil {
		return 0, 0, fmt.Errorf("stat archive: %w", err)
	}
	return count, info.Size(), nil
}

func writeEntries(out io.Writer, sourceDir string, names []string) (int, error) {
	w := zip.NewWriter(out)
	for _, name := range names {
		if err := writeEntry(w, sourceDir, name); err != nil {
			w.Close()
			return 0, err
		}
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return len(names), nil
}

func writeEntry(w *zip.Writer, sourceDir, name string) error {
	path := filepath.Join(sourceDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	entry, err := w.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}

// NormalizeZipName makes sure the archive name carries a .zip extension
func NormalizeZipName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".zip") {
		return name
	}
	return name + ".zip"
}
