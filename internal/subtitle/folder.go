package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileResult describes the outcome of loading one file from a folder
type FileResult struct {
	Path  string
	Lines int
	Err   error
}

// LoadFolder loads every file in dir whose lowercased name ends with suffix,
// in name order. Files that fail to load are reported through report and
// skipped; report may be nil.
func (r *Reader) LoadFolder(dir, suffix string, report func(FileResult)) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle folder: %w", err)
	}

	suffix = strings.ToLower(suffix)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var all []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		lines, err := r.Load(path)
		if report != nil {
			report(FileResult{Path: path, Lines: len(lines), Err: err})
		}
		if err != nil {
			continue
		}
		all = append(all, lines...)
	}

	return all, nil
}
