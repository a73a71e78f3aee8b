package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/logging"
	"codeberg.org/snonux/subvocab/internal/translation"
)

// MinLineLength is the number of non-blank characters a caption line needs
// to be worth translating
const MinLineLength = 3

// Translator turns source text into target text
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// LineStore is the episode cache as seen by the session
type LineStore interface {
	Lookup(episodeID string, index int) (string, bool)
	Put(episodeID string, index int, original, translated string) error
}

// WordStore is the word cache as seen by the session
type WordStore interface {
	Lookup(word string) (cache.WordRecord, bool)
	Put(word, translation string, count int) error
}

// Options configures a Session
type Options struct {
	// Delay is waited after each fresh translation to pace provider calls
	Delay time.Duration
	// SourceLabel and TargetLabel name the languages in the output
	SourceLabel string
	TargetLabel string
	Logger      *slog.Logger
}

// Session runs one interactive review loop
type Session struct {
	out        io.Writer
	prompter   *Prompter
	translator Translator
	opts       Options
	logger     *slog.Logger
	state      State
}

// New creates a session reading answers from in and writing to out
func New(in io.Reader, out io.Writer, translator Translator, opts Options) *Session {
	if opts.SourceLabel == "" {
		opts.SourceLabel = "German"
	}
	if opts.TargetLabel == "" {
		opts.TargetLabel = "English"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Session{
		out:        out,
		prompter:   NewPrompter(in, out),
		translator: translator,
		opts:       opts,
		logger:     logger,
		state:      Idle,
	}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

func (s *Session) begin() error {
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	s.state = Running
	return nil
}

// ask moves to Paused while waiting for the learner
func (s *Session) ask(ctx context.Context, question string) (answer string, quit bool, err error) {
	s.state = Paused
	answer, err = s.prompter.Ask(ctx, question)
	if err != nil {
		return "", false, err
	}
	s.state = Running
	return answer, IsQuit(answer), nil
}

// finish records the final state and prints the matching farewell
func (s *Session) finish(summary *Summary, err error) error {
	switch {
	case err == nil:
		s.state = Done
	case errors.Is(err, ErrInterrupted):
		s.state = Aborted
		fmt.Fprintln(s.out, "\nExiting... (Keyboard Interrupt)")
		err = nil
	case errors.Is(err, io.EOF):
		s.state = Aborted
		fmt.Fprintln(s.out, "\nExiting... (end of input)")
		err = nil
	default:
		s.state = Aborted
	}

	summary.State = s.state
	s.logger.Info("session finished",
		"state", s.state.String(),
		"shown", summary.Shown,
		"skipped", summary.Skipped,
		"cached", summary.Cached,
		"translated", summary.Translated,
		"failed", summary.Failed)
	return err
}

// translate calls the provider once. Provider failures are reported to the
// learner and replaced by the failure marker; ok is false in that case.
func (s *Session) translate(ctx context.Context, text string, summary *Summary) (result string, ok bool, err error) {
	translated, err := s.translator.Translate(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ErrInterrupted
		}
		fmt.Fprintf(s.out, "Translation error: %v\n", err)
		s.logger.Warn("translation failed", "text", text, "error", err)
		summary.Failed++
		return translation.FailedMarker, false, nil
	}
	return translated, true, nil
}

func (s *Session) pause(ctx context.Context) error {
	if s.opts.Delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.opts.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ErrInterrupted
	case <-timer.C:
		return nil
	}
}

func tooShort(line string) bool {
	return len([]rune(strings.TrimSpace(line))) < MinLineLength
}
