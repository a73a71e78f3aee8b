package cli

import (
	"time"

	"github.com/spf13/viper"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	ListModels bool

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Input data
	DataFolder string
	Episode    string
	Suffix     string
	Encoding   string

	// Cache documents
	EpisodesCache string
	FrequencyFile string
	WordsCache    string

	// Translation
	Provider string
	Model    string
	BaseURL  string
	Source   string
	Target   string
	Delay    time.Duration

	// Word session and export
	BatchFile string
	DeckName  string
	AnkiCSV   bool
	OutputDir string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel:      "warn",
		LogFormat:     "text",
		DataFolder:    "data",
		Episode:       "data/friends_s01e01.de.srt",
		Suffix:        ".de.srt",
		Encoding:      "cp1252",
		EpisodesCache: "translations.json",
		FrequencyFile: "common_words.json",
		WordsCache:    "translated_words.json",
		Provider:      "openai",
		Source:        "de",
		Target:        "en",
		Delay:         300 * time.Millisecond,
		DeckName:      "German Vocabulary",
		OutputDir:     ".",
	}
}

// configKeys maps viper keys to the flags that back them
var configKeys = []struct {
	key  string
	flag string
}{
	{"log.level", "log-level"},
	{"log.format", "log-format"},
	{"log.file", "log-file"},
	{"data.folder", "data"},
	{"data.episode", "episode"},
	{"data.suffix", "suffix"},
	{"data.encoding", "encoding"},
	{"cache.episodes", "episodes-cache"},
	{"cache.frequency", "frequency-file"},
	{"cache.words", "words-cache"},
	{"translate.provider", "provider"},
	{"translate.model", "model"},
	{"translate.base_url", "base-url"},
	{"translate.source", "source"},
	{"translate.target", "target"},
	{"translate.delay", "delay"},
	{"anki.deck", "deck-name"},
	{"anki.output", "output"},
}

// Resolve fills f from viper, which already applies the precedence of
// flag, environment, config file and default
func (f *Flags) Resolve() {
	f.LogLevel = viper.GetString("log.level")
	f.LogFormat = viper.GetString("log.format")
	f.LogFile = viper.GetString("log.file")
	f.DataFolder = viper.GetString("data.folder")
	f.Episode = viper.GetString("data.episode")
	f.Suffix = viper.GetString("data.suffix")
	f.Encoding = viper.GetString("data.encoding")
	f.EpisodesCache = viper.GetString("cache.episodes")
	f.FrequencyFile = viper.GetString("cache.frequency")
	f.WordsCache = viper.GetString("cache.words")
	f.Provider = viper.GetString("translate.provider")
	f.Model = viper.GetString("translate.model")
	f.BaseURL = viper.GetString("translate.base_url")
	f.Source = viper.GetString("translate.source")
	f.Target = viper.GetString("translate.target")
	f.Delay = viper.GetDuration("translate.delay")
	f.DeckName = viper.GetString("anki.deck")
	f.OutputDir = viper.GetString("anki.output")
}
