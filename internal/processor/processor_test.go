package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/cli"
	"codeberg.org/snonux/subvocab/internal/subtitle"
	"codeberg.org/snonux/subvocab/internal/testutil"
	"codeberg.org/snonux/subvocab/internal/translation"
	"codeberg.org/snonux/subvocab/internal/vocab"
)

// testFlags points every document into a temp directory
func testFlags(t *testing.T) *cli.Flags {
	t.Helper()
	dir := t.TempDir()

	flags := cli.NewFlags()
	flags.DataFolder = filepath.Join(dir, "data")
	flags.Episode = filepath.Join(flags.DataFolder, "friends_s01e01.de.srt")
	flags.EpisodesCache = filepath.Join(dir, "translations.json")
	flags.FrequencyFile = filepath.Join(dir, "common_words.json")
	flags.WordsCache = filepath.Join(dir, "translated_words.json")
	flags.OutputDir = filepath.Join(dir, "export")
	flags.Encoding = "utf-8"
	flags.Delay = 0
	return flags
}

func newTestProcessor(flags *cli.Flags, input string, mock *testutil.MockProvider) (*Processor, *bytes.Buffer) {
	var out bytes.Buffer
	return NewProcessor(flags, nil, WithIO(strings.NewReader(input), &out), WithProvider(mock)), &out
}

var episodeLines = []string{
	"Hallo, wie geht es dir?",
	"Mir geht es gut, danke.",
	"Ja",
	"Wie geht es Monica?",
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags, nil)

	require.NotNil(t, p)
	assert.Same(t, flags, p.flags)
	assert.NotNil(t, p.logger)
	assert.Equal(t, os.Stdin, p.in)
}

func TestRunEpisodeMissingFileWarns(t *testing.T) {
	flags := testFlags(t)
	mock := testutil.NewMockProvider()
	p, out := newTestProcessor(flags, "", mock)

	require.NoError(t, p.RunEpisode(context.Background()))
	assert.Contains(t, out.String(), "Warning: subtitle file")
	assert.Contains(t, out.String(), "not found")
	assert.Empty(t, mock.Calls)
	testutil.AssertFileNotExists(t, flags.EpisodesCache)
}

func TestRunEpisodeTranslatesAndCaches(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt", episodeLines...)
	mock := testutil.NewMockProvider()

	p, out := newTestProcessor(flags, "\n\n\n", mock)
	require.NoError(t, p.RunEpisode(context.Background()))

	assert.Contains(t, out.String(), "Loaded 4 subtitle lines for UNKNOWN.")
	assert.Contains(t, out.String(), "German: Hallo, wie geht es dir?")
	assert.Contains(t, out.String(), "English: en(Hallo, wie geht es dir?)")
	assert.Len(t, mock.Calls, 3, "the short line is skipped")

	store, err := cache.LoadEpisodes(flags.EpisodesCache)
	require.NoError(t, err)
	got, ok := store.Lookup("UNKNOWN", 3)
	require.True(t, ok)
	assert.Equal(t, "en(Wie geht es Monica?)", got)

	// a second run serves everything from the cache
	p, _ = newTestProcessor(flags, "\n\n\n", mock)
	require.NoError(t, p.RunEpisode(context.Background()))
	assert.Len(t, mock.Calls, 3)
}

func TestRunEpisodeLocked(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt", episodeLines...)

	lock, err := cache.AcquireLock(flags.EpisodesCache)
	require.NoError(t, err)
	defer lock.Release()

	p, _ := newTestProcessor(flags, "\n", testutil.NewMockProvider())
	assert.ErrorIs(t, p.RunEpisode(context.Background()), cache.ErrLocked)
}

func TestRunEpisodeCorruptCache(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt", episodeLines...)
	testutil.CreateTestFile(t, flags.EpisodesCache, []byte("{not json"))

	p, _ := newTestProcessor(flags, "\n", testutil.NewMockProvider())
	var corrupt *cache.CorruptDataError
	assert.True(t, errors.As(p.RunEpisode(context.Background()), &corrupt))
}

func TestRunEpisodeCachedWithoutAPIKey(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt", episodeLines...)

	p, _ := newTestProcessor(flags, "\n\n\n", testutil.NewMockProvider())
	require.NoError(t, p.RunEpisode(context.Background()))

	t.Setenv("OPENAI_API_KEY", "")
	var out bytes.Buffer
	p = NewProcessor(flags, nil, WithIO(strings.NewReader("\n\n\n"), &out))
	require.NoError(t, p.RunEpisode(context.Background()))

	assert.Contains(t, out.String(), "English: en(Hallo, wie geht es dir?)")
	assert.Contains(t, out.String(), "English: en(Wie geht es Monica?)")
	assert.NotContains(t, out.String(), "Translation error")
	assert.Contains(t, out.String(), "Reached the end of")
}

func TestRunEpisodeUncachedWithoutAPIKey(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt", "Guten Morgen, Rachel.")
	t.Setenv("OPENAI_API_KEY", "")

	var out bytes.Buffer
	p := NewProcessor(flags, nil, WithIO(strings.NewReader("\n"), &out))
	require.NoError(t, p.RunEpisode(context.Background()))

	assert.Contains(t, out.String(), "Translation error")
	assert.Contains(t, out.String(), translation.FailedMarker)

	store, err := cache.LoadEpisodes(flags.EpisodesCache)
	require.NoError(t, err)
	assert.Empty(t, store.Lines(subtitle.EpisodeID(flags.Episode)))
}

func TestCountingPathsAgree(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "friends_s01e01.de.srt",
		"Hallo, wie geht es dir?", "Mir geht es gut, danke.", "Wie geht es Monica?")

	p, _ := newTestProcessor(flags, "\n\n\n", testutil.NewMockProvider())
	require.NoError(t, p.RunEpisode(context.Background()))

	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())
	require.NoError(t, p.CountFromCache(context.Background()))
	assert.Contains(t, out.String(), "Extracted 9 unique words.")
	fromCache, err := cache.LoadFrequency(flags.FrequencyFile)
	require.NoError(t, err)

	p, out = newTestProcessor(flags, "", testutil.NewMockProvider())
	require.NoError(t, p.CountFromSubtitles(context.Background()))
	assert.Contains(t, out.String(), "Found 9 unique words.")
	assert.Contains(t, out.String(), "Loaded 3 lines from")
	fromSRT, err := cache.LoadFrequency(flags.FrequencyFile)
	require.NoError(t, err)

	assert.Equal(t, fromCache, fromSRT)
	assert.Equal(t, "geht", fromSRT[0].Word)
	assert.Equal(t, 3, fromSRT[0].Count)
}

func TestCountFromCacheEmpty(t *testing.T) {
	flags := testFlags(t)
	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())

	require.NoError(t, p.CountFromCache(context.Background()))
	assert.Contains(t, out.String(), "No cached translations found")
	testutil.AssertFileNotExists(t, flags.FrequencyFile)
}

func TestCountFromSubtitlesReportsBadFiles(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateSRTFile(t, flags.DataFolder, "a.de.srt", "Guten Morgen")
	testutil.CreateTestFile(t, filepath.Join(flags.DataFolder, "b.de.srt"), []byte("not a subtitle\n"))
	testutil.CreateSRTFile(t, flags.DataFolder, "c.en.srt", "Good morning")

	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())
	require.NoError(t, p.CountFromSubtitles(context.Background()))

	assert.Contains(t, out.String(), "Could not read")
	assert.Contains(t, out.String(), "Found 2 unique words.")
	assert.Contains(t, out.String(), "Top 2 saved to")
	assert.NotContains(t, out.String(), "c.en.srt")
}

func TestTranslateWords(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateTestFile(t, flags.FrequencyFile, []byte(`[["geht", 3], ["es", 3], ["hallo", 1]]`))
	mock := testutil.NewMockProvider()
	mock.Responses["geht"] = "goes"

	p, out := newTestProcessor(flags, "\n\n\n", mock)
	require.NoError(t, p.TranslateWords(context.Background()))

	assert.Contains(t, out.String(), "German: geht (used 3 times)")
	assert.Contains(t, out.String(), "All done!")

	store, err := cache.LoadWords(flags.WordsCache)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
	rec, ok := store.Lookup("geht")
	require.True(t, ok)
	assert.Equal(t, cache.WordRecord{Word: "geht", Translation: "goes", Count: 3}, rec)
}

func TestTranslateWordsWithoutFrequencyDocument(t *testing.T) {
	flags := testFlags(t)
	mock := testutil.NewMockProvider()

	p, out := newTestProcessor(flags, "", mock)
	require.NoError(t, p.TranslateWords(context.Background()))
	assert.Contains(t, out.String(), "Run 'subvocab words count' first")
	assert.Empty(t, mock.Calls)
}

func TestTranslateWordsFromBatch(t *testing.T) {
	flags := testFlags(t)
	flags.BatchFile = filepath.Join(t.TempDir(), "words.txt")
	testutil.CreateTestFile(t, flags.BatchFile, []byte("Haus = house\nBaum\n"))
	testutil.CreateTestFile(t, flags.FrequencyFile, []byte(`[["baum", 4]]`))
	mock := testutil.NewMockProvider()

	p, out := newTestProcessor(flags, "\n\n", mock)
	require.NoError(t, p.TranslateWords(context.Background()))

	assert.Contains(t, out.String(), "Loaded 2 words from")
	assert.Equal(t, []string{"baum"}, mock.Calls)

	store, err := cache.LoadWords(flags.WordsCache)
	require.NoError(t, err)
	haus, ok := store.Lookup("haus")
	require.True(t, ok)
	assert.Equal(t, "house", haus.Translation)
	assert.Equal(t, 1, haus.Count)
	baum, ok := store.Lookup("baum")
	require.True(t, ok)
	assert.Equal(t, 4, baum.Count)
}

func TestExportAnki(t *testing.T) {
	flags := testFlags(t)
	words := cache.NewWordCache(flags.WordsCache)
	require.NoError(t, words.Put("haus", "house", 7))
	require.NoError(t, words.Put("baum", "tree", 2))

	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())
	path, err := p.ExportAnki(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(flags.OutputDir, "German_Vocabulary.apkg"), path)
	testutil.AssertFileExists(t, path)
	assert.Contains(t, out.String(), "(2 cards)")

	flags.AnkiCSV = true
	p, _ = newTestProcessor(flags, "", testutil.NewMockProvider())
	path, err = p.ExportAnki(context.Background())
	require.NoError(t, err)
	testutil.AssertFileContains(t, path, "haus,house,used 7 times")
}

func TestExportAnkiNothingToExport(t *testing.T) {
	flags := testFlags(t)
	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())

	path, err := p.ExportAnki(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Contains(t, out.String(), "No translated words found")
}

func TestArchive(t *testing.T) {
	flags := testFlags(t)
	testutil.CreateTestFile(t, flags.EpisodesCache, []byte("{}"))
	testutil.CreateTestFile(t, flags.WordsCache, []byte("{}"))

	p, out := newTestProcessor(flags, "", testutil.NewMockProvider())
	require.NoError(t, p.Archive(context.Background()))
	assert.Contains(t, out.String(), "Cache documents archived to:")
	testutil.AssertFileNotExists(t, flags.EpisodesCache)
	testutil.AssertFileNotExists(t, flags.WordsCache)

	p, out = newTestProcessor(flags, "", testutil.NewMockProvider())
	require.NoError(t, p.Archive(context.Background()))
	assert.Contains(t, out.String(), "Nothing to archive.")
}

func TestRenderRanking(t *testing.T) {
	out := renderRanking([]vocab.WordCount{{Word: "geht", Count: 3}, {Word: "es", Count: 2}, {Word: "ja", Count: 1}}, 2)

	assert.Contains(t, out, "geht")
	assert.Contains(t, out, "es")
	assert.NotContains(t, out, "ja")
	assert.Contains(t, out, "... 1 more")
	assert.Contains(t, out, "Word")
	assert.Contains(t, out, "Count")
	assert.NotContains(t, out, "MORE")
}
