package llm

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// ParseProvider maps a user supplied name onto a Provider. Empty means Gemini.
func ParseProvider(name string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return ProviderGemini, nil
	}
	if slices.Contains(GetAvailableProviders(), p) {
		return p, nil
	}
	return "", fmt.Errorf("unsupported LLM provider: %s (supported: %s)", name, ProviderNames())
}

// New creates an LLM for provider. The credential is always passed in by the
// caller; nothing here reads the environment.
func New(ctx context.Context, provider Provider, apiKey, model string) (LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}
	switch provider {
	case ProviderGemini, "":
		return NewGemini(ctx, apiKey, model)

	case ProviderClaude:
		if model != "" {
			return NewClaudeWithModel(apiKey, model), nil
		}
		return NewClaude(apiKey), nil

	case ProviderOpenAI:
		if model != "" {
			return NewOpenAIWithModel(apiKey, model), nil
		}
		return NewOpenAI(apiKey), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// GetAvailableProviders returns a list of available LLM providers
func GetAvailableProviders() []Provider {
	return []Provider{ProviderGemini, ProviderClaude, ProviderOpenAI}
}

// ProviderNames is the comma separated provider list used in help and errors.
func ProviderNames() string {
	names := make([]string, 0, len(GetAvailableProviders()))
	for _, p := range GetAvailableProviders() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
