// Package llmhttp holds helpers shared by the HTTP language model adapters.
package llmhttp

import (
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// maxBodyInError bounds how much of a response body is quoted in errors.
const maxBodyInError = 512

// StatusError converts a non-200 response into an error.
// Throttling maps to ErrRateLimited and auth failures to ErrLLMUnavailable
// so callers can tell them apart with errors.Is.
func StatusError(provider string, status int, body []byte) error {
	msg := Snippet(body)
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w (status %d): %s", provider, domain.ErrRateLimited, status, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w: authentication failed (status %d): %s", provider, domain.ErrLLMUnavailable, status, msg)
	default:
		return fmt.Errorf("%s error (status %d): %s", provider, status, msg)
	}
}

// Snippet returns body truncated for inclusion in an error message.
func Snippet(body []byte) string {
	if len(body) <= maxBodyInError {
		return string(body)
	}
	cut := maxBodyInError
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
