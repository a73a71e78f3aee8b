package cache

import (
	"encoding/json"
	"fmt"

	"codeberg.org/snonux/subvocab/internal/vocab"
)

// SaveFrequency writes a ranking as an array of [word, count] pairs
func SaveFrequency(path string, ranking []vocab.WordCount) error {
	doc := make([][2]any, 0, len(ranking))
	for _, wc := range ranking {
		doc = append(doc, [2]any{wc.Word, wc.Count})
	}
	return writeDocument(path, doc)
}

// LoadFrequency reads a ranking written by SaveFrequency
func LoadFrequency(path string) ([]vocab.WordCount, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	var pairs []json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, &CorruptDataError{Path: path, Err: err}
	}

	ranking := make([]vocab.WordCount, 0, len(pairs))
	for i, raw := range pairs {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			return nil, corrupt(path, "entry %d is not a [word, count] pair", i)
		}

		var wc vocab.WordCount
		if err := json.Unmarshal(pair[0], &wc.Word); err != nil || wc.Word == "" {
			return nil, corrupt(path, "entry %d: word must be a non-empty string", i)
		}
		if err := json.Unmarshal(pair[1], &wc.Count); err != nil || wc.Count <= 0 {
			return nil, corrupt(path, "entry %d: count must be a positive integer", i)
		}
		ranking = append(ranking, wc)
	}

	return ranking, nil
}
