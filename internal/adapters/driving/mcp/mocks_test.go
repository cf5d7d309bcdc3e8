package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	result  *domain.AnalysisResult
	queries []domain.SearchQuery
	err     error

	lastRequest driving.AnalysisRequest
	lastSummary string
}

func (m *mockAnalysisService) Analyse(_ context.Context, req driving.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAnalysisService) ExtractQueries(summary string) []domain.SearchQuery {
	m.lastSummary = summary
	return m.queries
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}
