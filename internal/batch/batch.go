package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/subvocab/internal/vocab"
)

// WordEntry is one word of a batch file with an optional translation
type WordEntry struct {
	Word        string
	Translation string
}

// HasTranslation reports whether the entry brings its own translation
func (e WordEntry) HasTranslation() bool {
	return e.Translation != ""
}

// ReadBatchFile reads words from a file, one per line.
// Supported formats:
// - German word only: "Haus" (translated by the provider)
// - With translation: "Haus = house" (stored as given)
// Words are normalized the same way as subtitle words; lines whose word
// normalizes to nothing and duplicate words are ignored.
func ReadBatchFile(filename string) ([]WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return parse(content), nil
}

func parse(content []byte) []WordEntry {
	var entries []WordEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, translation, _ := strings.Cut(line, "=")
		entry := WordEntry{
			Word:        vocab.Normalize(strings.TrimSpace(word)),
			Translation: strings.TrimSpace(translation),
		}
		if entry.Word == "" || seen[entry.Word] {
			continue
		}
		seen[entry.Word] = true
		entries = append(entries, entry)
	}

	return entries
}
