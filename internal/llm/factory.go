package llm

import (
	"fmt"
	"os"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default models per provider. The openai provider defaults to the Gemini
// OpenAI-compatible endpoint, so its defaults are Gemini model ids.
const (
	DefaultOpenAIStorageModel      = "gemini-3-flash-preview"
	DefaultOpenAIRetrievalModel    = "gemini-3-pro-preview"
	DefaultAnthropicStorageModel   = "claude-haiku-4-5"
	DefaultAnthropicRetrievalModel = "claude-sonnet-4-5"
)

// DefaultModels returns the storage and retrieval models used for provider
// when none are configured. An unknown name gets the openai defaults.
func DefaultModels(provider string) (storage, retrieval string) {
	if provider == ProviderAnthropic {
		return DefaultAnthropicStorageModel, DefaultAnthropicRetrievalModel
	}
	return DefaultOpenAIStorageModel, DefaultOpenAIRetrievalModel
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
}

// APIKeyFromEnv returns LIFE_OS_API_KEY, falling back to API_KEY. Providers
// fall back further to their own conventional variables.
func APIKeyFromEnv() string {
	if k := os.Getenv("LIFE_OS_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("API_KEY")
}

// New creates the provider named by opts.Provider. An empty name selects openai.
func New(opts Options) (Provider, error) {
	key := opts.APIKey
	if key == "" {
		key = APIKeyFromEnv()
	}

	switch opts.Provider {
	case "", ProviderOpenAI:
		var o []OpenAIOption
		if opts.BaseURL != "" {
			o = append(o, WithBaseURL(opts.BaseURL))
		}
		return NewOpenAIProvider(key, o...)
	case ProviderAnthropic:
		var o []AnthropicOption
		if opts.BaseURL != "" {
			o = append(o, WithAnthropicBaseURL(opts.BaseURL))
		}
		return NewAnthropicProvider(key, o...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}
