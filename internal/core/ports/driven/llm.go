package driven

import "context"

// LLMService is the completion backend behind chunk summarisation.
//
// Adapters exist for OpenAI-compatible endpoints, Anthropic and Ollama.
// The factory wraps each of them in a client-side rate limiter, so
// callers never throttle on their own.
type LLMService interface {
	// Chat sends a system message plus the rendered chunk prompt.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping issues a minimal request to prove the endpoint and key work.
	Ping(ctx context.Context) error

	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions carries the analysis.max_tokens and analysis.temperature
// settings into each request. A zero MaxTokens leaves the provider
// default; Temperature is always sent, 0 included.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}
