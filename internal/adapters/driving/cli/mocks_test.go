package cli

import (
	"context"

	"github.com/custodia-labs/tendera/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/core/services"
)

// mockAnalysisService records requests and returns a canned result.
type mockAnalysisService struct {
	result *domain.AnalysisResult
	err    error

	requests []driving.AnalysisRequest
}

func (m *mockAnalysisService) Analyse(ctx context.Context, req driving.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.requests = append(m.requests, req)
	if req.Progress != nil {
		req.Progress.Notify(ctx, domain.ProgressEvent{
			Stage:   domain.StageExtracting,
			Message: "Извлекаю текст из документов",
		})
	}
	if m.err != nil {
		return nil, m.err
	}
	result := *m.result
	result.Input = req.Tender
	return &result, nil
}

func (m *mockAnalysisService) ExtractQueries(summary string) []domain.SearchQuery {
	return services.ParseSearchQueries(summary)
}

const testSummary = `1. **Резюме закупки** Поставка овощей для школьной столовой.
2. **Риски и особенности** Обеспечение контракта 5%.
3. **Рекомендация по участию** Участвовать, сложность: простой.

Поисковые запросы:
1. Картофель: картофель продовольственный оптом
2. Морковь: морковь мытая поставщик`

// setupTestServices installs mock services and resets command flags.
func setupTestServices() (*mockAnalysisService, func()) {
	analysis := &mockAnalysisService{
		result: &domain.AnalysisResult{
			Summary: testSummary,
			SearchQueries: []domain.SearchQuery{
				{Label: "Картофель", Query: "картофель продовольственный оптом"},
				{Label: "Морковь", Query: "морковь мытая поставщик"},
			},
			DocumentCount: 3,
			ChunkCount:    1,
			Quality:       domain.QualityComplete,
		},
	}

	origSettings, origAnalysis, origBootstrap := settingsService, analysisService, bootstrap
	settingsService = services.NewSettingsService(memory.NewConfigStore(), nil)
	analysisService = analysis
	bootstrap = nil

	return analysis, func() {
		settingsService, analysisService, bootstrap = origSettings, origAnalysis, origBootstrap
		analyzeTender = domain.TenderInfo{}
		analyzeTenderFile = ""
		analyzeJSON = false
		analyzeQuiet = false
		analyzePageSize = 0
		queriesJSON = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}
