package ai

import (
	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator adapts ValidateLLMConfig to the settings service.
type ConfigValidator struct{}

func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM builds the provider client, rate limiter included, and pings it.
func (v *ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return ValidateLLMConfig(config)
}
