package session

import (
	"context"
	"fmt"
)

// Episode is the input of an episode review
type Episode struct {
	ID    string
	Lines []string
}

// RunEpisode walks through the caption lines of ep. Lines shorter than
// MinLineLength are skipped silently. A fresh translation is persisted
// before it is displayed, so it survives a crash at the prompt.
func (s *Session) RunEpisode(ctx context.Context, ep Episode, store LineStore) (Summary, error) {
	var summary Summary
	if err := s.begin(); err != nil {
		return summary, err
	}

	err := s.runEpisode(ctx, ep, store, &summary)
	return summary, s.finish(&summary, err)
}

func (s *Session) runEpisode(ctx context.Context, ep Episode, store LineStore, summary *Summary) error {
	for index, line := range ep.Lines {
		if err := ctx.Err(); err != nil {
			return ErrInterrupted
		}
		if tooShort(line) {
			summary.Skipped++
			continue
		}

		fmt.Fprintf(s.out, "\n%s | Line %d\n", ep.ID, index)
		fmt.Fprintf(s.out, "%s: %s\n", s.opts.SourceLabel, line)

		translated, fresh, err := s.lineTranslation(ctx, ep.ID, index, line, store, summary)
		if err != nil {
			return err
		}

		fmt.Fprintf(s.out, "%s: %s\n", s.opts.TargetLabel, translated)
		summary.Shown++

		_, quit, err := s.ask(ctx, "Press Enter to continue, or type 'q' to quit: ")
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(s.out, "Exiting... Bye!")
			return nil
		}

		if fresh {
			if err := s.pause(ctx); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(s.out, "\nReached the end of %s.\n", ep.ID)
	return nil
}

// lineTranslation returns the cached translation or fetches and stores a new
// one. fresh reports whether the provider was called successfully.
func (s *Session) lineTranslation(ctx context.Context, episodeID string, index int, line string, store LineStore, summary *Summary) (text string, fresh bool, err error) {
	if cached, ok := store.Lookup(episodeID, index); ok {
		summary.Cached++
		return cached, false, nil
	}

	translated, ok, err := s.translate(ctx, line, summary)
	if err != nil || !ok {
		return translated, false, err
	}

	if err := store.Put(episodeID, index, line, translated); err != nil {
		return "", false, fmt.Errorf("failed to save translation of line %d: %w", index, err)
	}
	s.logger.Debug("cached translation", "episode", episodeID, "line", index)
	summary.Translated++
	return translated, true, nil
}
