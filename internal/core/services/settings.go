package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTemperature = "llm.temperature"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMRate        = "llm.requests_per_second"

	keyTargetLength      = "analysis.target_length"
	keyMaxLineLength     = "analysis.max_line_length"
	keyMinKeptLines      = "analysis.min_lines"
	keyTruncateThreshold = "analysis.truncate_threshold"
	keyHeadChars         = "analysis.head_chars"
	keyTailChars         = "analysis.tail_chars"
	keyChunkLimit        = "analysis.chunk_limit"
	keyMaxFileSize       = "analysis.max_file_size"
	keyMaxArchiveDepth   = "analysis.max_archive_depth"
	keyKeywords          = "analysis.keywords"
)

// Environment variables consulted when the config file leaves a value empty.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvModel        = "TENDERA_MODEL"
	EnvProvider     = "TENDERA_PROVIDER"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Values missing from the config store fall back to the environment and
// then to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	model := s.getString(keyLLMModel, s.getenv(EnvModel))
	if model == "" {
		model = domain.DefaultLLMModels()[provider]
	}

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          provider,
			Model:             model,
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.getString(keyLLMAPIKey, s.envAPIKey(provider)),
			Temperature:       s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			MaxTokens:         s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			RequestsPerSecond: s.getFloat(keyLLMRate, defaults.LLM.RequestsPerSecond),
		},
		Analysis: domain.AnalysisSettings{
			TargetLength:      s.getInt(keyTargetLength, defaults.Analysis.TargetLength),
			MaxLineLength:     s.getInt(keyMaxLineLength, defaults.Analysis.MaxLineLength),
			MinKeptLines:      s.getInt(keyMinKeptLines, defaults.Analysis.MinKeptLines),
			TruncateThreshold: s.getInt(keyTruncateThreshold, defaults.Analysis.TruncateThreshold),
			HeadChars:         s.getInt(keyHeadChars, defaults.Analysis.HeadChars),
			TailChars:         s.getInt(keyTailChars, defaults.Analysis.TailChars),
			ChunkLimit:        s.getInt(keyChunkLimit, defaults.Analysis.ChunkLimit),
			MaxFileSize:       int64(s.getInt(keyMaxFileSize, int(defaults.Analysis.MaxFileSize))),
			MaxArchiveDepth:   s.getInt(keyMaxArchiveDepth, defaults.Analysis.MaxArchiveDepth),
			Keywords:          s.getStringSlice(keyKeywords, defaults.Analysis.Keywords),
		},
	}

	return settings, nil
}

// Save persists application settings.
// Keywords are only written when they differ from the built-in set.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMTemperature, settings.LLM.Temperature},
		{keyLLMMaxTokens, settings.LLM.MaxTokens},
		{keyLLMRate, settings.LLM.RequestsPerSecond},
		{keyTargetLength, settings.Analysis.TargetLength},
		{keyMaxLineLength, settings.Analysis.MaxLineLength},
		{keyMinKeptLines, settings.Analysis.MinKeptLines},
		{keyTruncateThreshold, settings.Analysis.TruncateThreshold},
		{keyHeadChars, settings.Analysis.HeadChars},
		{keyTailChars, settings.Analysis.TailChars},
		{keyChunkLimit, settings.Analysis.ChunkLimit},
		{keyMaxFileSize, settings.Analysis.MaxFileSize},
		{keyMaxArchiveDepth, settings.Analysis.MaxArchiveDepth},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if !equalStrings(settings.Analysis.Keywords, domain.DefaultKeywords()) {
		if err := s.configStore.Set(keyKeywords, settings.Analysis.Keywords); err != nil {
			return fmt.Errorf("save %s: %w", keyKeywords, err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are usable for analysis.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: provider %q is not configured", domain.ErrLLMUnavailable, settings.LLM.Provider)
	}

	a := settings.Analysis
	if a.HeadChars+a.TailChars > a.TruncateThreshold {
		return fmt.Errorf("%w: head_chars + tail_chars exceeds truncate_threshold", domain.ErrInvalidInput)
	}
	if a.ChunkLimit <= 0 || a.MaxLineLength <= 0 {
		return fmt.Errorf("%w: chunk_limit and max_line_length must be positive", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return s.getenv(EnvOpenAIKey)
	case domain.AIProviderAnthropic:
		return s.getenv(EnvAnthropicKey)
	default:
		return ""
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		val = s.getenv(EnvProvider)
	}
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
