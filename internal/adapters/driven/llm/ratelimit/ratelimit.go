// Package ratelimit throttles calls to a language model service.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.LLMService = (*Service)(nil)

// DefaultBackoff is the pause after the provider reports throttling.
const DefaultBackoff = 20 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate. Zero or less disables the
	// token bucket but keeps the backoff.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default 1).
	BurstSize int

	// Backoff is the pause after a rate-limited response (default 20s).
	Backoff time.Duration
}

// Service wraps an LLMService with a token bucket and a backoff window
// that opens when the provider answers with ErrRateLimited.
// Failed calls are not retried.
type Service struct {
	next    driven.LLMService
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// Wrap returns next decorated with rate limiting.
func Wrap(next driven.LLMService, cfg Config) *Service {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Service{
		next:    next,
		limiter: rate.NewLimiter(limit, cfg.BurstSize),
		backoff: cfg.Backoff,
	}
}

// Chat waits for a token and forwards the call.
func (s *Service) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	out, err := s.next.Chat(ctx, messages, opts)
	s.record(err)
	return out, err
}

// ModelName returns the wrapped model name.
func (s *Service) ModelName() string {
	return s.next.ModelName()
}

// Ping is forwarded without throttling.
func (s *Service) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close closes the wrapped service.
func (s *Service) Close() error {
	return s.next.Close()
}

// wait blocks for the backoff window and then for the token bucket.
func (s *Service) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		logger.Debug("LLM backoff: waiting %s", d.Round(time.Millisecond))
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return s.limiter.Wait(ctx)
}

// record opens the backoff window after a throttling error.
func (s *Service) record(err error) {
	if err == nil || !errors.Is(err, domain.ErrRateLimited) {
		return
	}
	s.mu.Lock()
	s.retryAt = time.Now().Add(s.backoff)
	s.mu.Unlock()
	logger.Warn("LLM provider is throttling, pausing for %s", s.backoff)
}
