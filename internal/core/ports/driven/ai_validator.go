package driven

import "github.com/custodia-labs/tendera/internal/core/domain"

// AIConfigValidator checks that LLM settings point at a live provider
// before they are written to the settings file.
type AIConfigValidator interface {
	// ValidateLLM returns nil for an unconfigured provider; only a
	// configured but unreachable one is an error.
	ValidateLLM(config *domain.LLMSettings) error
}
