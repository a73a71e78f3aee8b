package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/testutil"
	"codeberg.org/snonux/subvocab/internal/translation"
)

func newTranslator(mock *testutil.MockProvider) *translation.Translator {
	return translation.NewTranslator(mock, "de", "en", translation.DefaultOptions())
}

func newEpisodeCache(t *testing.T) *cache.EpisodeCache {
	t.Helper()
	return cache.NewEpisodeCache(filepath.Join(t.TempDir(), "translations.json"))
}

// tracingStore writes a marker to out on every Put
type tracingStore struct {
	*cache.EpisodeCache
	out io.Writer
	err error
}

func (s *tracingStore) Put(episodeID string, index int, original, translated string) error {
	if s.err != nil {
		return s.err
	}
	fmt.Fprintf(s.out, "<stored %d>\n", index)
	return s.EpisodeCache.Put(episodeID, index, original, translated)
}

func TestRunEpisodeShowsAndCachesEveryLine(t *testing.T) {
	mock := testutil.NewMockProvider()
	mock.Responses["Hallo Welt"] = "Hello world"
	store := newEpisodeCache(t)
	var out bytes.Buffer

	s := New(strings.NewReader("\n\n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{
		ID:    "S01E01",
		Lines: []string{"Hallo Welt", "Wie geht's?"},
	}, store)
	require.NoError(t, err)

	assert.Equal(t, Done, summary.State)
	assert.Equal(t, Done, s.State())
	assert.Equal(t, 2, summary.Shown)
	assert.Equal(t, 2, summary.Translated)
	assert.Contains(t, out.String(), "S01E01 | Line 0")
	assert.Contains(t, out.String(), "German: Hallo Welt")
	assert.Contains(t, out.String(), "English: Hello world")
	assert.Contains(t, out.String(), "English: en(Wie geht's?)")

	// everything reached the disk
	reloaded, err := cache.LoadEpisodes(store.Path())
	require.NoError(t, err)
	got, ok := reloaded.Lookup("S01E01", 1)
	require.True(t, ok)
	assert.Equal(t, "en(Wie geht's?)", got)
}

func TestRunEpisodePersistsBeforeDisplay(t *testing.T) {
	mock := testutil.NewMockProvider()
	var out bytes.Buffer
	store := &tracingStore{EpisodeCache: newEpisodeCache(t), out: &out}

	s := New(strings.NewReader("q\n"), &out, newTranslator(mock), Options{})
	_, err := s.RunEpisode(context.Background(), Episode{ID: "S01E01", Lines: []string{"Guten Morgen"}}, store)
	require.NoError(t, err)

	text := out.String()
	stored := strings.Index(text, "<stored 0>")
	shown := strings.Index(text, "English: en(Guten Morgen)")
	require.NotEqual(t, -1, stored)
	require.NotEqual(t, -1, shown)
	assert.Less(t, stored, shown)
}

func TestRunEpisodeSkipsShortLines(t *testing.T) {
	mock := testutil.NewMockProvider()
	var out bytes.Buffer

	s := New(strings.NewReader("\n\n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{
		ID:    "S01E01",
		Lines: []string{"Ja", "  ", "Nein danke", " ok "},
	}, newEpisodeCache(t))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, 1, summary.Shown)
	assert.Equal(t, []string{"Nein danke"}, mock.Calls)
	assert.Contains(t, out.String(), "S01E01 | Line 2")
	assert.NotContains(t, out.String(), "Line 0")
}

func TestRunEpisodeUsesCachedTranslations(t *testing.T) {
	mock := testutil.NewMockProvider()
	store := newEpisodeCache(t)
	require.NoError(t, store.Put("S01E01", 0, "Hallo", "Hi there"))
	var out bytes.Buffer

	s := New(strings.NewReader("\n\n"), &out, newTranslator(mock), Options{Delay: time.Hour})
	summary, err := s.RunEpisode(context.Background(), Episode{
		ID:    "S01E01",
		Lines: []string{"Hallo"},
	}, store)
	require.NoError(t, err)

	assert.Empty(t, mock.Calls)
	assert.Equal(t, 1, summary.Cached)
	assert.Contains(t, out.String(), "English: Hi there")
}

func TestRunEpisodeDoesNotCacheFailures(t *testing.T) {
	mock := testutil.NewMockProvider()
	mock.Errors["Hallo Welt"] = errors.New("rate limited")
	store := newEpisodeCache(t)
	var out bytes.Buffer

	s := New(strings.NewReader("\n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{ID: "S01E01", Lines: []string{"Hallo Welt"}}, store)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, out.String(), "Translation error:")
	assert.Contains(t, out.String(), "English: "+translation.FailedMarker)
	_, ok := store.Lookup("S01E01", 0)
	assert.False(t, ok)
	testutil.AssertFileNotExists(t, store.Path())
}

func TestRunEpisodeQuit(t *testing.T) {
	mock := testutil.NewMockProvider()
	var out bytes.Buffer

	s := New(strings.NewReader(" Q \n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{
		ID:    "S01E01",
		Lines: []string{"Eins zwei", "Drei vier"},
	}, newEpisodeCache(t))
	require.NoError(t, err)

	assert.Equal(t, Done, summary.State)
	assert.Equal(t, 1, summary.Shown)
	assert.Equal(t, []string{"Eins zwei"}, mock.Calls)
	assert.Contains(t, out.String(), "Exiting... Bye!")
}

func TestRunEpisodeEndOfInput(t *testing.T) {
	mock := testutil.NewMockProvider()
	var out bytes.Buffer

	s := New(strings.NewReader(""), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{
		ID:    "S01E01",
		Lines: []string{"Eins zwei", "Drei vier"},
	}, newEpisodeCache(t))
	require.NoError(t, err)

	assert.Equal(t, Aborted, summary.State)
	assert.Equal(t, 1, summary.Translated, "the shown line stays cached")
	assert.Contains(t, out.String(), "end of input")
}

func TestRunEpisodeInterruptedAtPrompt(t *testing.T) {
	mock := testutil.NewMockProvider()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	var out bytes.Buffer
	store := newEpisodeCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	s := New(pr, &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(ctx, Episode{ID: "S01E01", Lines: []string{"Eins zwei"}}, store)
	require.NoError(t, err)

	assert.Equal(t, Aborted, summary.State)
	assert.Contains(t, out.String(), "Exiting... (Keyboard Interrupt)")
	_, ok := store.Lookup("S01E01", 0)
	assert.True(t, ok, "translation shown before the interrupt is kept")
}

func TestRunEpisodeInterruptedDuringTranslation(t *testing.T) {
	mock := testutil.NewMockProvider()
	ctx, cancel := context.WithCancel(context.Background())
	mock.OnCall = func(string) { cancel() }
	store := newEpisodeCache(t)
	var out bytes.Buffer

	s := New(strings.NewReader("\n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(ctx, Episode{ID: "S01E01", Lines: []string{"Eins zwei"}}, store)
	require.NoError(t, err)

	assert.Equal(t, Aborted, summary.State)
	assert.Equal(t, 0, summary.Failed)
	assert.NotContains(t, out.String(), "Translation error")
	assert.Equal(t, 0, store.Len())
}

func TestRunEpisodeSaveFailure(t *testing.T) {
	mock := testutil.NewMockProvider()
	var out bytes.Buffer
	store := &tracingStore{EpisodeCache: newEpisodeCache(t), out: &out, err: errors.New("disk full")}

	s := New(strings.NewReader("\n"), &out, newTranslator(mock), Options{})
	summary, err := s.RunEpisode(context.Background(), Episode{ID: "S01E01", Lines: []string{"Eins zwei"}}, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, Aborted, summary.State)
	assert.NotContains(t, out.String(), "English:")
}

func TestRunEpisodeTwice(t *testing.T) {
	s := New(strings.NewReader(""), io.Discard, newTranslator(testutil.NewMockProvider()), Options{})
	_, err := s.RunEpisode(context.Background(), Episode{ID: "S01E01"}, newEpisodeCache(t))
	require.NoError(t, err)

	_, err = s.RunEpisode(context.Background(), Episode{ID: "S01E01"}, newEpisodeCache(t))
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestPauseAfterFreshTranslationOnly(t *testing.T) {
	mock := testutil.NewMockProvider()
	store := newEpisodeCache(t)
	require.NoError(t, store.Put("S01E01", 0, "Eins zwei", "One two"))

	s := New(strings.NewReader("\n"), io.Discard, newTranslator(mock), Options{Delay: time.Hour})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.RunEpisode(context.Background(), Episode{ID: "S01E01", Lines: []string{"Eins zwei"}}, store)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cached line should not wait for the pacing delay")
	}
}
