package translation

import (
	"context"
	"fmt"
	"strings"
)

// Provider translates text between two languages given as ISO 639-1 codes
type Provider interface {
	// Translate returns the translation of text
	Translate(ctx context.Context, text, source, target string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config selects and configures a provider
type Config struct {
	Provider string // "openai" or "gemini"
	Model    string // empty selects the provider default
	APIKey   string
	BaseURL  string // optional OpenAI compatible endpoint
}

// NewProvider creates the provider named in config
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "", "openai":
		return NewOpenAIProvider(config.APIKey, config.Model, config.BaseURL), nil
	case "gemini":
		return NewGeminiProvider(config.APIKey, config.Model), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// prompt builds the instruction shared by the chat based providers
func prompt(text, source, target string) string {
	return fmt.Sprintf("Translate the following %s text to %s. Respond with only the translation, nothing else.\n\n%s",
		LanguageName(source), LanguageName(target), text)
}

var languageNames = map[string]string{
	"de": "German",
	"en": "English",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"nl": "Dutch",
	"bg": "Bulgarian",
}

// LanguageName returns the English name of a language code, or the code itself
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}
