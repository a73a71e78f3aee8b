package processor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/session"
	"codeberg.org/snonux/subvocab/internal/subtitle"
)

// RunEpisode reviews the configured episode line by line. A missing
// subtitle file is reported as a warning, not as an error.
func (p *Processor) RunEpisode(ctx context.Context) error {
	path := p.flags.Episode
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(p.out, "Warning: subtitle file %s not found.\n", path)
			return nil
		}
		return fmt.Errorf("failed to check subtitle file: %w", err)
	}

	reader, err := subtitle.NewReader(p.flags.Encoding)
	if err != nil {
		return err
	}
	lines, err := reader.Load(path)
	if err != nil {
		return err
	}

	episodeID := subtitle.EpisodeID(path)
	if lang := subtitle.DetectLanguage(lines); lang != "" && lang != p.flags.Source {
		fmt.Fprintf(p.out, "Warning: %s looks like %q, expected %q.\n", path, lang, p.flags.Source)
	}

	lock, err := cache.AcquireLock(p.flags.EpisodesCache)
	if err != nil {
		return err
	}
	defer lock.Release()

	store, err := cache.LoadEpisodes(p.flags.EpisodesCache)
	if err != nil {
		return err
	}

	tr, err := p.translator()
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Loaded %d subtitle lines for %s.\n", len(lines), episodeID)
	p.logger.Info("episode session starting", "episode", episodeID, "lines", len(lines), "cached", len(store.Lines(episodeID)))

	_, err = p.newSession(tr).RunEpisode(ctx, session.Episode{ID: episodeID, Lines: lines}, store)
	return err
}
