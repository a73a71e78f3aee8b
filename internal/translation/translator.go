package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// FailedMarker is shown instead of a translation when the provider fails.
// It is never written to a cache.
const FailedMarker = "[Translation failed]"

// ErrProviderUnavailable is the cause when the circuit breaker is open
var ErrProviderUnavailable = errors.New("translation provider unavailable after repeated failures")

// Error is returned for every failed translation
type Error struct {
	Provider string
	Text     string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s translation of %q failed: %v", e.Provider, e.Text, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options tunes the circuit breaker around a provider
type Options struct {
	// MaxFailures is the number of consecutive failures that open the breaker
	MaxFailures uint32
	// Cooldown is how long the breaker stays open before a trial call
	Cooldown time.Duration
}

// DefaultOptions returns the breaker settings used by the CLI
func DefaultOptions() Options {
	return Options{
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
	}
}

// Translator makes exactly one provider call per translation and converts
// every failure into *Error
type Translator struct {
	provider Provider
	source   string
	target   string
	breaker  *gobreaker.CircuitBreaker
}

// NewTranslator wraps provider for translations from source to target
func NewTranslator(provider Provider, source, target string, opts Options) *Translator {
	if opts.MaxFailures == 0 {
		opts.MaxFailures = DefaultOptions().MaxFailures
	}

	settings := gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 1,
		Timeout:     opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		// a cancelled session is not the provider's fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &Translator{
		provider: provider,
		source:   source,
		target:   target,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// Source returns the source language code
func (t *Translator) Source() string {
	return t.source
}

// Target returns the target language code
func (t *Translator) Target() string {
	return t.target
}

// ProviderName returns the name of the wrapped provider
func (t *Translator) ProviderName() string {
	return t.provider.Name()
}

// Translate translates text with the wrapped provider
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	result, err := t.breaker.Execute(func() (interface{}, error) {
		return t.provider.Translate(ctx, text, t.source, t.target)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		return "", &Error{Provider: t.provider.Name(), Text: text, Err: err}
	}

	return result.(string), nil
}
