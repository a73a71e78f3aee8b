package subtitle

import (
	"path/filepath"
	"strings"
)

// UnknownEpisode is used when no episode tag can be derived from a filename
const UnknownEpisode = "UNKNOWN"

// EpisodeID derives the cache key for a caption file from its name.
//
// The name is lowercased and split on every "s"; when the second piece
// contains an "e", everything before its first "." is upper-cased and
// prefixed with "S". This reproduces the keys of existing translation
// documents exactly, including their quirks: "s01e01.de.srt" yields
// "S01E01", but "friends_s01e01.de.srt" yields "UNKNOWN" because the "s" in
// "friends" is split on first.
func EpisodeID(path string) string {
	name := strings.ToLower(filepath.Base(path))
	parts := strings.Split(name, "s")
	if len(parts) < 2 || !strings.Contains(parts[1], "e") {
		return UnknownEpisode
	}

	tag, _, _ := strings.Cut(parts[1], ".")
	return "S" + strings.ToUpper(tag)
}
