package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for the LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature controls randomness. Kept low for analysis.
	Temperature float64

	// MaxTokens is the output token ceiling per call.
	MaxTokens int

	// RequestsPerSecond throttles model calls. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Default analysis parameters. They carry no derivation and are kept
// configurable rather than re-tuned.
const (
	DefaultTargetLength      = 15000
	DefaultMaxLineLength     = 120
	DefaultMinKeptLines      = 30
	DefaultTruncateThreshold = 20000
	DefaultHeadChars         = 10000
	DefaultTailChars         = 5000
	DefaultChunkLimit        = 120000
	DefaultTemperature       = 0.2
	DefaultMaxTokens         = 1200
	DefaultMaxFileSize       = 50 * 1024 * 1024
	DefaultMaxArchiveDepth   = 3
	DefaultPageSize          = 4000
)

// DefaultKeywords is the domain keyword set used by the compressor.
// Matching is case-insensitive substring matching, so stems are used.
func DefaultKeywords() []string {
	return []string{
		"требован", "характеристик", "технич", "спецификац",
		"цена", "стоимост", "нмцк", "руб",
		"количеств", "кол-во", "объем", "объём", "ед. изм", "штук", "шт.",
		"гост", "стандарт", "сорт", "марк", "качеств", "сертификат",
		"упаковк", "тара", "маркировк",
		"срок", "поставк", "доставк", "гаранти", "дата",
		"товар", "наименован", "позици", "аналог", "эквивалент",
		"обеспечени", "штраф", "пени", "неустойк", "оплат", "аванс",
		"requirement", "spec", "price", "quantity", "standard", "packag", "deadline",
	}
}

// AnalysisSettings holds the tunables of the document-to-analysis pipeline.
type AnalysisSettings struct {
	// TargetLength is the soft cap on compressed document length.
	TargetLength int

	// MaxLineLength drops longer lines as boilerplate.
	MaxLineLength int

	// MinKeptLines is the fallback threshold below which filtering is undone.
	MinKeptLines int

	// TruncateThreshold triggers head+tail truncation.
	TruncateThreshold int

	// HeadChars is the number of leading characters kept on truncation.
	HeadChars int

	// TailChars is the number of trailing characters kept on truncation.
	TailChars int

	// ChunkLimit is the hard per-request corpus size.
	ChunkLimit int

	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64

	// MaxArchiveDepth bounds archive-in-archive recursion.
	MaxArchiveDepth int

	// Keywords is the domain keyword set.
	Keywords []string
}

// DefaultAnalysisSettings returns the reference pipeline parameters.
func DefaultAnalysisSettings() AnalysisSettings {
	return AnalysisSettings{
		TargetLength:      DefaultTargetLength,
		MaxLineLength:     DefaultMaxLineLength,
		MinKeptLines:      DefaultMinKeptLines,
		TruncateThreshold: DefaultTruncateThreshold,
		HeadChars:         DefaultHeadChars,
		TailChars:         DefaultTailChars,
		ChunkLimit:        DefaultChunkLimit,
		MaxFileSize:       DefaultMaxFileSize,
		MaxArchiveDepth:   DefaultMaxArchiveDepth,
		Keywords:          DefaultKeywords(),
	}
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Analysis holds pipeline settings.
	Analysis AnalysisSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM defaults to OpenAI but stays unconfigured until an API key is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       DefaultLLMModels()[AIProviderOpenAI],
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
		Analysis: DefaultAnalysisSettings(),
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// PipelineConfig holds text processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfig derives the text processor pipeline from analysis settings.
func (a AnalysisSettings) PipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"compressor"},
		ProcessorConfigs: map[string]map[string]any{
			"compressor": {
				"target_length":      a.TargetLength,
				"max_line_length":    a.MaxLineLength,
				"min_lines":          a.MinKeptLines,
				"truncate_threshold": a.TruncateThreshold,
				"head":               a.HeadChars,
				"tail":               a.TailChars,
				"keywords":           a.Keywords,
			},
		},
	}
}

// DefaultPipelineConfig returns the default pipeline configuration.
func DefaultPipelineConfig() PipelineConfig {
	return DefaultAnalysisSettings().PipelineConfig()
}
