package session

import (
	"context"
	"fmt"
)

// WordItem is one word to review. A non-empty Translation is stored as is
// instead of asking the provider.
type WordItem struct {
	Word        string
	Count       int
	Translation string
}

// RunWords asks the learner before translating each word that is not in the
// cache yet, then stores and shows the translation.
func (s *Session) RunWords(ctx context.Context, items []WordItem, store WordStore) (Summary, error) {
	var summary Summary
	if err := s.begin(); err != nil {
		return summary, err
	}

	err := s.runWords(ctx, items, store, &summary)
	return summary, s.finish(&summary, err)
}

func (s *Session) runWords(ctx context.Context, items []WordItem, store WordStore, summary *Summary) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return ErrInterrupted
		}
		if _, ok := store.Lookup(item.Word); ok {
			summary.Skipped++
			continue
		}

		count := item.Count
		if count <= 0 {
			count = 1
		}

		fmt.Fprintf(s.out, "\n%s: %s (used %d times)\n", s.opts.SourceLabel, item.Word, count)
		_, quit, err := s.ask(ctx, "Press Enter to translate or type 'q' to quit: ")
		if err != nil {
			return err
		}
		if quit {
			fmt.Fprintln(s.out, "Bye!")
			break
		}

		translated, fresh := item.Translation, false
		if translated == "" {
			var ok bool
			translated, ok, err = s.translate(ctx, item.Word, summary)
			if err != nil {
				return err
			}
			fresh = ok
		}

		if fresh || item.Translation != "" {
			if err := store.Put(item.Word, translated, count); err != nil {
				return fmt.Errorf("failed to save translation of %q: %w", item.Word, err)
			}
			summary.Translated++
		}

		fmt.Fprintf(s.out, "%s: %s\n", s.opts.TargetLabel, translated)
		summary.Shown++

		if fresh {
			if err := s.pause(ctx); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(s.out, "\nAll done!")
	return nil
}
