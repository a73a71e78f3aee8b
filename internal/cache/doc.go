// Package cache persists translations between sessions. Every mutation is
// written to disk immediately, so an interrupted session loses at most the
// item that was being translated.
//
// Three JSON documents are handled here:
//
//	translations.json      {"S01E01": {"0": {"de": "...", "en": "..."}}}
//	translated_words.json  {"wort": {"en": "...", "count": 12}}
//	common_words.json      [["wort", 12], ...]
//
// Documents are validated on load and rejected with a *CorruptDataError when
// they do not have the expected shape.
package cache
