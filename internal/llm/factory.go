package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderOpenAI   = "openai"
	ProviderCopilot  = "copilot"
)

// NewClient creates an LLM client based on provider configuration.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch normalizeProvider(provider) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio:
		return NewLMStudioClient(model, baseURL)
	case ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	case ProviderCopilot:
		return NewCopilotClient(model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// CompactPrompt reports whether provider runs a local model that does better
// with the short prompt.
func CompactPrompt(provider string) bool {
	switch normalizeProvider(provider) {
	case "", ProviderOllama, ProviderLMStudio:
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	switch p {
	case "lm-studio", "llmstudio":
		return ProviderLMStudio
	}
	return p
}
