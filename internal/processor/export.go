package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/subvocab/internal"
	"codeberg.org/snonux/subvocab/internal/anki"
	"codeberg.org/snonux/subvocab/internal/archive"
	"codeberg.org/snonux/subvocab/internal/cache"
	"codeberg.org/snonux/subvocab/internal/cli"
	"codeberg.org/snonux/subvocab/internal/models"
)

// ExportAnki writes the translated words as an Anki deck, or as CSV when
// requested, and returns the output path
func (p *Processor) ExportAnki(ctx context.Context) (string, error) {
	store, err := cache.LoadWords(p.flags.WordsCache)
	if err != nil {
		return "", err
	}
	if store.Len() == 0 {
		fmt.Fprintf(p.out, "No translated words found in %s.\n", p.flags.WordsCache)
		return "", nil
	}

	outputDir := p.flags.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     filepath.Join(outputDir, "anki_import.csv"),
		IncludeHeaders: true,
	})
	for _, rec := range store.Words() {
		gen.AddCard(anki.Card{
			German:      rec.Word,
			Translation: rec.Translation,
			Notes:       fmt.Sprintf("used %d times", rec.Count),
		})
	}

	var outputPath string
	if p.flags.AnkiCSV {
		outputPath = filepath.Join(outputDir, "anki_import.csv")
		if err := gen.GenerateCSV(); err != nil {
			return "", err
		}
	} else {
		outputPath = filepath.Join(outputDir, internal.SanitizeFilename(p.flags.DeckName)+".apkg")
		if err := gen.GenerateAPKG(outputPath, p.flags.DeckName); err != nil {
			return "", err
		}
	}

	total, _ := gen.Stats()
	fmt.Fprintf(p.out, "Anki package created: %s (%d cards)\n", outputPath, total)
	return outputPath, nil
}

// Archive moves the cache documents into a timestamped archive folder next
// to the episode cache
func (p *Processor) Archive(ctx context.Context) error {
	paths := []string{p.flags.EpisodesCache, p.flags.FrequencyFile, p.flags.WordsCache}

	for _, path := range paths {
		lock, err := cache.AcquireLock(path)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	archivePath, err := archive.ArchiveDocuments(filepath.Dir(p.flags.EpisodesCache), paths)
	if errors.Is(err, archive.ErrNothingToArchive) {
		fmt.Fprintln(p.out, "Nothing to archive.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to archive cache documents: %w", err)
	}

	fmt.Fprintf(p.out, "Cache documents archived to: %s\n", archivePath)
	return nil
}

// ListModels prints the chat models available for the OpenAI key
func (p *Processor) ListModels(ctx context.Context) error {
	return models.NewLister(cli.GetOpenAIKey(), p.flags.BaseURL).ListChatModels(ctx, p.out)
}
