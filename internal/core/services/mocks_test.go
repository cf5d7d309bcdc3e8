package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// mockLLMService implements driven.LLMService for testing.
// Answers are returned in call order; calls listed in failOn return an error.
type mockLLMService struct {
	mu      sync.Mutex
	answers []string
	failOn  map[int]error
	calls   [][]driven.ChatMessage
	opts    []driven.ChatOptions
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, messages)
	m.opts = append(m.opts, opts)
	n := len(m.calls)

	if err, ok := m.failOn[n]; ok {
		return "", err
	}
	if n <= len(m.answers) {
		return m.answers[n-1], nil
	}
	return fmt.Sprintf("answer %d", n), nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

func (m *mockLLMService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// userMessage returns the user content of call i (0-based).
func (m *mockLLMService) userMessage(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.calls[i] {
		if msg.Role == "user" {
			return msg.Content
		}
	}
	return ""
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	reloads int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (m *mockPromptStore) Reload() {
	m.reloads++
}

// recordingSink collects progress events.
type recordingSink struct {
	events []domain.ProgressEvent
}

func (r *recordingSink) Notify(_ context.Context, event domain.ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingSink) stages() []domain.ProgressStage {
	out := make([]domain.ProgressStage, len(r.events))
	for i, e := range r.events {
		out[i] = e.Stage
	}
	return out
}

// mockConfigValidator implements driven.AIConfigValidator for testing.
type mockConfigValidator struct {
	err    error
	called *domain.LLMSettings
}

func (m *mockConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	m.called = settings
	return m.err
}

var (
	_ driven.LLMService        = (*mockLLMService)(nil)
	_ driven.PromptStore       = (*mockPromptStore)(nil)
	_ driven.AIConfigValidator = (*mockConfigValidator)(nil)
)
