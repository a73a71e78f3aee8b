package processor

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/subvocab/internal/batch"
	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/session"
	"codeberg.org/snonux/subvocab/internal/subtitle"
	"codeberg.org/snonux/subvocab/internal/vocab"
)

// tableRows is how many words the terminal table shows
const tableRows = 20

// CountFromCache ranks the words of every cached original line
func (p *Processor) CountFromCache(ctx context.Context) error {
	store, err := cache.LoadEpisodes(p.flags.EpisodesCache)
	if err != nil {
		return err
	}

	originals := store.Originals()
	if len(originals) == 0 {
		fmt.Fprintf(p.out, "No cached translations found in %s.\n", p.flags.EpisodesCache)
		return nil
	}

	counter := vocab.NewCounter()
	counter.AddLines(originals)
	fmt.Fprintf(p.out, "Extracted %d unique words.\n", counter.Unique())
	return p.saveRanking(counter)
}

// CountFromSubtitles ranks the words of every subtitle file in the data folder
func (p *Processor) CountFromSubtitles(ctx context.Context) error {
	reader, err := subtitle.NewReader(p.flags.Encoding)
	if err != nil {
		return err
	}

	lines, err := reader.LoadFolder(p.flags.DataFolder, p.flags.Suffix, func(res subtitle.FileResult) {
		if res.Err != nil {
			fmt.Fprintf(p.out, "Could not read %s: %v\n", res.Path, res.Err)
			p.logger.Warn("skipping subtitle file", "path", res.Path, "error", res.Err)
			return
		}
		fmt.Fprintf(p.out, "Loaded %d lines from %s\n", res.Lines, res.Path)
	})
	if err != nil {
		return err
	}

	counter := vocab.NewCounter()
	counter.AddLines(lines)
	fmt.Fprintf(p.out, "Found %d unique words.\n", counter.Unique())
	return p.saveRanking(counter)
}

func (p *Processor) saveRanking(counter *vocab.Counter) error {
	ranking := counter.MostCommon(vocab.TopN)

	lock, err := cache.AcquireLock(p.flags.FrequencyFile)
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := cache.SaveFrequency(p.flags.FrequencyFile, ranking); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Top %d saved to %s.\n", len(ranking), p.flags.FrequencyFile)

	if p.interactive && len(ranking) > 0 {
		fmt.Fprintln(p.out, renderRanking(ranking, tableRows))
	}
	return nil
}

// TranslateWords runs the word session over the frequency document, or over
// the batch file when one is configured
func (p *Processor) TranslateWords(ctx context.Context) error {
	items, err := p.wordItems()
	if err != nil {
		return err
	}
	if items == nil {
		return nil
	}

	lock, err := cache.AcquireLock(p.flags.WordsCache)
	if err != nil {
		return err
	}
	defer lock.Release()

	store, err := cache.LoadWords(p.flags.WordsCache)
	if err != nil {
		return err
	}

	tr, err := p.translator()
	if err != nil {
		return err
	}

	p.logger.Info("word session starting", "words", len(items), "cached", store.Len())
	_, err = p.newSession(tr).RunWords(ctx, items, store)
	return err
}

// wordItems returns nil without an error when there is nothing to do
func (p *Processor) wordItems() ([]session.WordItem, error) {
	ranking, err := cache.LoadFrequency(p.flags.FrequencyFile)
	missing := errors.Is(err, cache.ErrNotFound)
	if err != nil && !missing {
		return nil, err
	}

	if p.flags.BatchFile == "" {
		if missing {
			fmt.Fprintf(p.out, "Warning: %s not found. Run 'subvocab words count' first.\n", p.flags.FrequencyFile)
			return nil, nil
		}
		items := make([]session.WordItem, 0, len(ranking))
		for _, wc := range ranking {
			items = append(items, session.WordItem{Word: wc.Word, Count: wc.Count})
		}
		return items, nil
	}

	counts := make(map[string]int, len(ranking))
	for _, wc := range ranking {
		counts[wc.Word] = wc.Count
	}

	entries, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return nil, err
	}
	items := make([]session.WordItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, session.WordItem{
			Word:        entry.Word,
			Count:       counts[entry.Word],
			Translation: entry.Translation,
		})
	}
	fmt.Fprintf(p.out, "Loaded %d words from %s.\n", len(items), p.flags.BatchFile)
	return items, nil
}
