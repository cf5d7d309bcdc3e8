package llmhttp

import "github.com/custodia-labs/tendera/internal/logger"

// Usage is the token accounting a provider reports for one completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int

	// Truncated is set when generation stopped at the max_tokens cap,
	// which usually cuts the search query list short.
	Truncated bool
}

// LogUsage records a completion's token usage at debug level and warns
// about truncated answers.
func LogUsage(provider, model string, u Usage) {
	entry := logger.With(logger.Fields{
		"provider":          provider,
		"model":             model,
		"prompt_tokens":     u.PromptTokens,
		"completion_tokens": u.CompletionTokens,
	})
	if u.Truncated {
		entry.Warn("answer truncated at max_tokens")
		return
	}
	entry.Debug("completion finished")
}
