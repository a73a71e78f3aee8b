package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToArchive is returned when none of the documents exist
var ErrNothingToArchive = errors.New("no cache documents to archive")

// ArchiveDocuments moves every existing document in paths into a new
// timestamped directory below dir/archive and returns that directory.
// Missing documents are skipped.
func ArchiveDocuments(dir string, paths []string) (string, error) {
	var existing []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("refusing to archive directory %s", path)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return "", ErrNothingToArchive
	}

	archivePath, err := newArchiveDir(filepath.Join(dir, "archive"))
	if err != nil {
		return "", err
	}

	for _, path := range existing {
		target := filepath.Join(archivePath, filepath.Base(path))
		if err := os.Rename(path, target); err != nil {
			return archivePath, fmt.Errorf("failed to archive %s: %w", path, err)
		}
	}

	return archivePath, nil
}

func newArchiveDir(archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now()
	archivePath := filepath.Join(archiveDir, "cache-"+now.Format("20060102-150405"))

	// Same second as a previous archive, add microseconds to make it unique
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, "cache-"+now.Format("20060102-150405.000000"))
	}

	if err := os.Mkdir(archivePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}
	return archivePath, nil
}
