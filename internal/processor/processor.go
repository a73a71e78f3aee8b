package processor

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"codeberg.org/snonux/subvocab/internal/cli"
	"codeberg.org/snonux/subvocab/internal/logging"
	"codeberg.org/snonux/subvocab/internal/session"
	"codeberg.org/snonux/subvocab/internal/translation"
)

// Processor runs the subvocab commands
type Processor struct {
	flags       *cli.Flags
	logger      *slog.Logger
	in          io.Reader
	out         io.Writer
	provider    translation.Provider
	interactive bool
}

// Option customizes a Processor
type Option func(*Processor)

// WithIO replaces stdin and stdout
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Processor) {
		p.in = in
		p.out = out
		p.interactive = isTerminal(out)
	}
}

// WithProvider uses provider instead of the configured one
func WithProvider(provider translation.Provider) Option {
	return func(p *Processor) {
		p.provider = provider
	}
}

// NewProcessor creates a new processor for the resolved flags
func NewProcessor(flags *cli.Flags, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.Discard()
	}

	p := &Processor{
		flags:       flags,
		logger:      logger,
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: isTerminal(os.Stdout),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// translator builds the translator for the configured provider
func (p *Processor) translator() (*translation.Translator, error) {
	provider := p.provider
	if provider == nil {
		// Without a key cached items still show; every miss becomes the
		// failure marker.
		apiKey := cli.APIKey(p.flags.Provider)
		if apiKey == "" {
			p.logger.Warn("no API key for translation provider", "provider", p.flags.Provider)
		}

		var err error
		provider, err = translation.NewProvider(translation.Config{
			Provider: p.flags.Provider,
			Model:    p.flags.Model,
			APIKey:   apiKey,
			BaseURL:  p.flags.BaseURL,
		})
		if err != nil {
			return nil, err
		}
	}

	p.logger.Debug("using translation provider", "provider", provider.Name(), "source", p.flags.Source, "target", p.flags.Target)
	return translation.NewTranslator(provider, p.flags.Source, p.flags.Target, translation.DefaultOptions()), nil
}

func (p *Processor) newSession(tr session.Translator) *session.Session {
	return session.New(p.in, p.out, tr, session.Options{
		Delay:       p.flags.Delay,
		SourceLabel: translation.LanguageName(p.flags.Source),
		TargetLabel: translation.LanguageName(p.flags.Target),
		Logger:      p.logger,
	})
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
