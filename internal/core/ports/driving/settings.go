package driving

import "github.com/custodia-labs/tendera/internal/core/domain"

// SettingsService reads and writes the LLM and analysis settings.
// Values missing from the settings file fall back to environment
// variables and then to built-in defaults.
type SettingsService interface {
	Get() (*domain.AppSettings, error)
	Save(settings *domain.AppSettings) error

	// SetLLMProvider fills an empty model with the provider default and an
	// empty key from the environment before persisting.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate reports whether analysis can run with the current settings.
	Validate() error

	GetDefaults() domain.AppSettings

	// ValidateLLMConfig pings the configured provider.
	ValidateLLMConfig() error
}
