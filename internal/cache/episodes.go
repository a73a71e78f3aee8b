package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LineRecord is the cached translation of one caption line
type LineRecord struct {
	Index      int
	Original   string
	Translated string
}

// lineDoc is the on-disk shape of a LineRecord. The field names are fixed
// by existing translations.json files.
type lineDoc struct {
	DE *string `json:"de"`
	EN *string `json:"en"`
}

type episode struct {
	lines map[int]LineRecord
	order []int
}

// EpisodeCache maps episode identifiers to translated caption lines
type EpisodeCache struct {
	path     string
	episodes map[string]*episode
	order    []string
}

// NewEpisodeCache creates an empty cache that persists to path
func NewEpisodeCache(path string) *EpisodeCache {
	return &EpisodeCache{
		path:     path,
		episodes: make(map[string]*episode),
	}
}

// LoadEpisodes reads the episode cache at path. A missing file yields an
// empty cache.
func LoadEpisodes(path string) (*EpisodeCache, error) {
	c := NewEpisodeCache(path)

	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return c, nil
	}

	err = decodeObject(data, func(episodeID string, raw json.RawMessage) error {
		ep := c.episode(episodeID)
		return decodeObject(raw, func(key string, raw json.RawMessage) error {
			index, err := parseIndex(key)
			if err != nil {
				return fmt.Errorf("episode %s: %w", episodeID, err)
			}

			var doc lineDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("episode %s line %s: %w", episodeID, key, err)
			}
			if doc.DE == nil || doc.EN == nil {
				return fmt.Errorf("episode %s line %s: both \"de\" and \"en\" are required", episodeID, key)
			}

			ep.set(LineRecord{Index: index, Original: *doc.DE, Translated: *doc.EN})
			return nil
		})
	})
	if err != nil {
		return nil, &CorruptDataError{Path: path, Err: err}
	}

	return c, nil
}

// Path returns the file the cache persists to
func (c *EpisodeCache) Path() string {
	return c.path
}

// Lookup returns the cached translation of line index in episode
func (c *EpisodeCache) Lookup(episodeID string, index int) (string, bool) {
	rec, ok := c.Record(episodeID, index)
	if !ok {
		return "", false
	}
	return rec.Translated, true
}

// Record returns the full cached record of line index in episode
func (c *EpisodeCache) Record(episodeID string, index int) (LineRecord, bool) {
	ep, ok := c.episodes[episodeID]
	if !ok {
		return LineRecord{}, false
	}
	rec, ok := ep.lines[index]
	return rec, ok
}

// Put stores a translated line and immediately rewrites the whole document.
// Storing an existing key replaces its record.
func (c *EpisodeCache) Put(episodeID string, index int, original, translated string) error {
	if index < 0 {
		return fmt.Errorf("invalid line index %d", index)
	}

	c.episode(episodeID).set(LineRecord{Index: index, Original: original, Translated: translated})
	return c.Save()
}

// Save writes the cache to disk
func (c *EpisodeCache) Save() error {
	return writeDocument(c.path, c.document())
}

// Episodes returns the episode identifiers in document order
func (c *EpisodeCache) Episodes() []string {
	return append([]string(nil), c.order...)
}

// Lines returns the records of an episode in document order
func (c *EpisodeCache) Lines(episodeID string) []LineRecord {
	ep, ok := c.episodes[episodeID]
	if !ok {
		return nil
	}

	records := make([]LineRecord, 0, len(ep.order))
	for _, index := range ep.order {
		records = append(records, ep.lines[index])
	}
	return records
}

// Originals returns every cached original text, episode by episode
func (c *EpisodeCache) Originals() []string {
	var texts []string
	for _, id := range c.order {
		for _, rec := range c.Lines(id) {
			texts = append(texts, rec.Original)
		}
	}
	return texts
}

// Len returns the number of cached lines across all episodes
func (c *EpisodeCache) Len() int {
	n := 0
	for _, ep := range c.episodes {
		n += len(ep.order)
	}
	return n
}

func (c *EpisodeCache) episode(id string) *episode {
	ep, ok := c.episodes[id]
	if !ok {
		ep = &episode{lines: make(map[int]LineRecord)}
		c.episodes[id] = ep
		c.order = append(c.order, id)
	}
	return ep
}

func (c *EpisodeCache) document() orderedObject {
	doc := make(orderedObject, 0, len(c.order))
	for _, id := range c.order {
		lines := make(orderedObject, 0, len(c.episodes[id].order))
		for _, rec := range c.Lines(id) {
			original, translated := rec.Original, rec.Translated
			lines = append(lines, member{
				Key:   strconv.Itoa(rec.Index),
				Value: lineDoc{DE: &original, EN: &translated},
			})
		}
		doc = append(doc, member{Key: id, Value: lines})
	}
	return doc
}

func (ep *episode) set(rec LineRecord) {
	if _, exists := ep.lines[rec.Index]; !exists {
		ep.order = append(ep.order, rec.Index)
	}
	ep.lines[rec.Index] = rec
}

// parseIndex accepts only the canonical decimal form strconv.Itoa produces
func parseIndex(key string) (int, error) {
	index, err := strconv.Atoi(key)
	if err != nil || index < 0 || strconv.Itoa(index) != key {
		return 0, fmt.Errorf("line key %q is not a non-negative integer", key)
	}
	return index, nil
}
