package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/subvocab/internal"
)

// Action runs one command with the resolved flags
type Action func(ctx context.Context, flags *Flags) error

// Actions are the operations behind the commands
type Actions struct {
	Learn      Action
	Count      Action
	CountSRT   Action
	Translate  Action
	Export     Action
	Archive    Action
	ListModels Action
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, actions Actions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "subvocab",
		Short: "Learn German from TV subtitles",
		Long: `subvocab walks through the German subtitles of an episode line by line,
showing an English translation for each line, and builds a vocabulary of the
most common words.

Translations are cached, so every line and word is translated only once.

Examples:
  subvocab                          # Review the configured episode (same as "learn")
  subvocab learn --episode data/friends_s01e02.de.srt
  subvocab words count-srt          # Top 100 words of all subtitles in the data folder
  subvocab words translate          # Translate the most common words one by one
  subvocab words export             # Create an Anki deck from the translated words`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ListModels {
				return run(cmd, flags, actions.ListModels)
			}
			return run(cmd, flags, actions.Learn)
		},
	}

	setupFlags(rootCmd, flags)

	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Review an episode line by line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, actions.Learn)
		},
	}

	wordsCmd := &cobra.Command{
		Use:   "words",
		Short: "Word frequency and vocabulary commands",
	}
	wordsCmd.AddCommand(
		&cobra.Command{
			Use:   "count",
			Short: "Count words of the cached episode translations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, flags, actions.Count)
			},
		},
		&cobra.Command{
			Use:   "count-srt",
			Short: "Count words of every subtitle file in the data folder",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, flags, actions.CountSRT)
			},
		},
		newTranslateCommand(flags, actions),
		newExportCommand(flags, actions),
	)

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Move the cache documents into a timestamped archive folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, actions.Archive)
		},
	}

	rootCmd.AddCommand(learnCmd, wordsCmd, archiveCmd)
	return rootCmd
}

func newTranslateCommand(flags *Flags, actions Actions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the most common words interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, actions.Translate)
		},
	}
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate words from file (one per line, optional 'word = translation')")
	return cmd
}

func newExportCommand(flags *Flags, actions Actions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export translated words to Anki (APKG by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, actions.Export)
		},
	}
	cmd.Flags().BoolVar(&flags.AnkiCSV, "csv", false, "Generate CSV instead of APKG")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory for the export")
	_ = viper.BindPFlag("anki.deck", cmd.Flags().Lookup("deck-name"))
	_ = viper.BindPFlag("anki.output", cmd.Flags().Lookup("output"))
	return cmd
}

func run(cmd *cobra.Command, flags *Flags, action Action) error {
	if action == nil {
		return fmt.Errorf("command %q is not available", cmd.Name())
	}
	flags.Resolve()
	return action(cmd.Context(), flags)
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.subvocab.yaml)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")
	pf.StringVar(&flags.LogFile, "log-file", "", "Also append logs to this file")

	pf.StringVar(&flags.DataFolder, "data", flags.DataFolder, "Folder with the subtitle files")
	pf.StringVar(&flags.Episode, "episode", flags.Episode, "Subtitle file reviewed by learn")
	pf.StringVar(&flags.Suffix, "suffix", flags.Suffix, "Suffix of the subtitle files counted by words count-srt")
	pf.StringVar(&flags.Encoding, "encoding", flags.Encoding, "Character encoding of the subtitle files")

	pf.StringVar(&flags.EpisodesCache, "episodes-cache", flags.EpisodesCache, "Episode translation cache document")
	pf.StringVar(&flags.FrequencyFile, "frequency-file", flags.FrequencyFile, "Word frequency document")
	pf.StringVar(&flags.WordsCache, "words-cache", flags.WordsCache, "Word translation cache document")

	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	pf.StringVar(&flags.Model, "model", "", "Translation model (default depends on the provider)")
	pf.StringVar(&flags.BaseURL, "base-url", "", "Alternative API endpoint for OpenAI compatible providers")
	pf.StringVar(&flags.Source, "source", flags.Source, "Source language code")
	pf.StringVar(&flags.Target, "target", flags.Target, "Target language code")
	pf.DurationVar(&flags.Delay, "delay", flags.Delay, "Pause after each fresh translation (0 disables)")

	// export flags live on a subcommand; keep their defaults visible to Resolve
	viper.SetDefault("anki.deck", flags.DeckName)
	viper.SetDefault("anki.output", flags.OutputDir)

	bindFlagsToViper(pf)
}

func bindFlagsToViper(fs *pflag.FlagSet) {
	for _, k := range configKeys {
		if f := fs.Lookup(k.flag); f != nil {
			_ = viper.BindPFlag(k.key, f)
		}
	}
}

// InitConfig initializes viper configuration. Variables from a .env file in
// the working directory are loaded first, without overriding the real
// environment.
func InitConfig(cfgFile string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".subvocab")
	}

	viper.SetEnvPrefix("SUBVOCAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translate.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return viper.GetString("translate.gemini_key")
}

// APIKey returns the key for the named provider
func APIKey(provider string) string {
	if provider == "gemini" {
		return GetGeminiKey()
	}
	return GetOpenAIKey()
}
