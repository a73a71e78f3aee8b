package cache

import (
	"encoding/json"
	"fmt"
)

// WordRecord is the cached translation of one frequent word
type WordRecord struct {
	Word        string
	Translation string
	Count       int
}

type wordDoc struct {
	EN    *string `json:"en"`
	Count *int    `json:"count"`
}

// WordCache maps normalized words to their translation and usage count
type WordCache struct {
	path  string
	words map[string]WordRecord
	order []string
}

// NewWordCache creates an empty word cache that persists to path
func NewWordCache(path string) *WordCache {
	return &WordCache{
		path:  path,
		words: make(map[string]WordRecord),
	}
}

// LoadWords reads the word translation document at path. A missing file
// yields an empty cache.
func LoadWords(path string) (*WordCache, error) {
	c := NewWordCache(path)

	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return c, nil
	}

	err = decodeObject(data, func(word string, raw json.RawMessage) error {
		var doc wordDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("word %q: %w", word, err)
		}
		if doc.EN == nil || doc.Count == nil {
			return fmt.Errorf("word %q: both \"en\" and \"count\" are required", word)
		}
		if *doc.Count <= 0 {
			return fmt.Errorf("word %q: count must be positive, got %d", word, *doc.Count)
		}
		c.set(WordRecord{Word: word, Translation: *doc.EN, Count: *doc.Count})
		return nil
	})
	if err != nil {
		return nil, &CorruptDataError{Path: path, Err: err}
	}

	return c, nil
}

// Path returns the file the cache persists to
func (c *WordCache) Path() string {
	return c.path
}

// Lookup returns the cached record for word
func (c *WordCache) Lookup(word string) (WordRecord, bool) {
	rec, ok := c.words[word]
	return rec, ok
}

// Put stores a word translation and immediately rewrites the document
func (c *WordCache) Put(word, translation string, count int) error {
	if word == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if count <= 0 {
		return fmt.Errorf("count for %q must be positive, got %d", word, count)
	}

	c.set(WordRecord{Word: word, Translation: translation, Count: count})
	return c.Save()
}

// Save writes the cache to disk
func (c *WordCache) Save() error {
	doc := make(orderedObject, 0, len(c.order))
	for _, rec := range c.Words() {
		translation, count := rec.Translation, rec.Count
		doc = append(doc, member{Key: rec.Word, Value: wordDoc{EN: &translation, Count: &count}})
	}
	return writeDocument(c.path, doc)
}

// Words returns all records in insertion order
func (c *WordCache) Words() []WordRecord {
	records := make([]WordRecord, 0, len(c.order))
	for _, word := range c.order {
		records = append(records, c.words[word])
	}
	return records
}

// Len returns the number of cached words
func (c *WordCache) Len() int {
	return len(c.order)
}

func (c *WordCache) set(rec WordRecord) {
	if _, exists := c.words[rec.Word]; !exists {
		c.order = append(c.order, rec.Word)
	}
	c.words[rec.Word] = rec
}
