package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/subvocab/internal/cli"
	"codeberg.org/snonux/subvocab/internal/logging"
	"codeberg.org/snonux/subvocab/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags, cli.Actions{
		Learn: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.RunEpisode(ctx)
		}),
		Count: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.CountFromCache(ctx)
		}),
		CountSRT: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.CountFromSubtitles(ctx)
		}),
		Translate: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.TranslateWords(ctx)
		}),
		Export: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			_, err := p.ExportAnki(ctx)
			return err
		}),
		Archive: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.Archive(ctx)
		}),
		ListModels: withProcessor(func(ctx context.Context, p *processor.Processor) error {
			return p.ListModels(ctx)
		}),
	})

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Ctrl+C ends the interactive session gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func withProcessor(run func(context.Context, *processor.Processor) error) cli.Action {
	return func(ctx context.Context, flags *cli.Flags) error {
		logger, closer, err := logging.New(logging.Options{
			Level:  flags.LogLevel,
			Format: flags.LogFormat,
			File:   flags.LogFile,
		})
		if err != nil {
			return err
		}
		defer closer.Close()

		return run(ctx, processor.NewProcessor(flags, logger))
	}
}
