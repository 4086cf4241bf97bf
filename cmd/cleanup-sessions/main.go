// Command cleanup-sessions lists Telegram session files next to the
// configured session path and deletes them on request. Deleting the session
// file forces a fresh login; deleting only lock files can recover a session
// that was not closed properly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Session cleanup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var locksOnly bool
	var force bool
	flag.BoolVar(&locksOnly, "locks-only", false, "delete only stale lock files, keep the session")
	flag.BoolVar(&force, "force", false, "delete without prompting")
	flag.Parse()

	// Only the session path matters here, API credentials are not needed
	_ = godotenv.Load()
	sessionPath := os.Getenv("SESSION_FILE")
	if sessionPath == "" {
		sessionPath = "telegram.session"
	}

	files, err := sessionFiles(sessionPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No session files found.")
		return nil
	}

	fmt.Printf("Found %d session file(s):\n", len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		fmt.Printf("  %s (%s, modified %s)\n",
			path, humanize.IBytes(uint64(info.Size())), info.ModTime().Format("2006-01-02 15:04"))
	}

	if locksOnly {
		files = filterLocks(files)
		if len(files) == 0 {
			fmt.Println("No lock files to delete.")
			return nil
		}
	}

	if !force && !confirm(files, locksOnly) {
		fmt.Println("No changes made.")
		return nil
	}

	var failed int
	for _, path := range files {
		if err := os.Remove(path); err != nil {
			fmt.Printf("  could not delete %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("  deleted %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	if !locksOnly {
		fmt.Println("Done. Run the authenticate command before downloading again.")
	}
	return nil
}

// sessionFiles globs the session file and its lock/temp siblings
func sessionFiles(sessionPath string) ([]string, error) {
	dir := filepath.Dir(sessionPath)
	base := filepath.Base(sessionPath)

	matches, err := filepath.Glob(filepath.Join(dir, base+"*"))
	if err != nil {
		return nil, fmt.Errorf("globbing session files: %w", err)
	}

	var files []string
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

// filterLocks keeps only lock and journal files, never the session itself
func filterLocks(files []string) []string {
	var locks []string
	for _, path := range files {
		if strings.HasSuffix(path, "-journal") || strings.HasSuffix(path, ".lock") || strings.HasSuffix(path, ".tmp") {
			locks = append(locks, path)
		}
	}
	return locks
}

func confirm(files []string, locksOnly bool) bool {
	if locksOnly {
		fmt.Printf("Delete %d lock file(s)? [y/N] ", len(files))
	} else {
		fmt.Printf("Delete %d file(s)? You will need to log in again. [y/N] ", len(files))
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
