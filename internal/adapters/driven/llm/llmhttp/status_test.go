package llmhttp

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"unauthorised", http.StatusUnauthorized, domain.ErrLLMUnavailable},
		{"forbidden", http.StatusForbidden, domain.ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StatusError("openai", tt.status, []byte(`{"error":"x"}`))
			assert.True(t, errors.Is(err, tt.target))
			assert.Contains(t, err.Error(), "openai")
		})
	}

	err := StatusError("ollama", http.StatusInternalServerError, []byte("boom"))
	assert.EqualError(t, err, "ollama error (status 500): boom")
	assert.False(t, errors.Is(err, domain.ErrRateLimited))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet([]byte("short")))

	long := strings.Repeat("я", 400) // 800 bytes
	got := Snippet([]byte(long))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxBodyInError+3)
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(got, "...")))
}
