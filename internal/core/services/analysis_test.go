package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/extractors"
	"github.com/custodia-labs/tendera/internal/extractors/pdf"
	"github.com/custodia-labs/tendera/internal/extractors/plaintext"
	"github.com/custodia-labs/tendera/internal/postprocessors"
	"github.com/custodia-labs/tendera/internal/postprocessors/chunker"
)

const finalAnswer = `1. **Резюме закупки**: поставка цемента и песка.
2. **Риски и особенности**: штраф 10%.
3. **Рекомендация по участию**: участвовать, сложность средняя.

Поисковые запросы:
1. Цемент: цемент м500 купить оптом
2. Песок: песок речной цена`

// --- Test helpers ---

func writeFile(t *testing.T, dir, name, content string) domain.SourceFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return domain.NewSourceFile(path, name)
}

func newTestRegistry() *extractors.Registry {
	r := extractors.NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	return r
}

func newTestService(llm *mockLLMService, limit int) *AnalysisService {
	planner := chunker.New(chunker.WithLimit(limit))
	settings := domain.DefaultAppSettings().LLM
	if llm == nil {
		// A typed nil would not compare equal to nil inside the service.
		return NewAnalysisService(newTestRegistry(), postprocessors.NewPipeline(), planner, nil, settings)
	}
	return NewAnalysisService(newTestRegistry(), postprocessors.NewPipeline(), planner, llm, settings)
}

// --- Tests ---

func TestAnalyse_NoLLM(t *testing.T) {
	svc := newTestService(nil, domain.DefaultChunkLimit)

	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Nil(t, result)
}

func TestAnalyse_NoFiles(t *testing.T) {
	llm := &mockLLMService{}
	svc := newTestService(llm, domain.DefaultChunkLimit)
	sink := &recordingSink{}

	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Tender:   testTender,
		Progress: sink,
	})

	require.NoError(t, err)
	assert.Equal(t, SummaryNoDocuments, result.Summary)
	assert.Equal(t, domain.QualityNoDocuments, result.Quality)
	assert.Equal(t, testTender, result.Input)
	assert.False(t, result.HasQueries())
	assert.Equal(t, 0, llm.callCount())
	assert.Equal(t, []domain.ProgressStage{domain.StageExtracting, domain.StageDone}, sink.stages())
}

func TestAnalyse_NoExtractableText(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{}
	svc := newTestService(llm, domain.DefaultChunkLimit)

	files := []domain.SourceFile{
		writeFile(t, dir, "setup.exe", "MZ\x90\x00"),
		writeFile(t, dir, "empty.txt", "   \n\n"),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{Files: files})

	require.NoError(t, err)
	assert.Equal(t, domain.QualityNoDocuments, result.Quality)
	assert.Contains(t, result.Summary, "файлов: 2")
	assert.Equal(t, 0, llm.callCount())
}

func TestAnalyse_SingleRequest(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{answers: []string{finalAnswer}}
	svc := newTestService(llm, domain.DefaultChunkLimit)
	sink := &recordingSink{}

	files := []domain.SourceFile{
		writeFile(t, dir, "tz.txt", "Требования к цементу: ГОСТ 31108"),
		writeFile(t, dir, "contract.txt", "Срок поставки 10 дней"),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Tender:   testTender,
		Files:    files,
		Progress: sink,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, finalAnswer, result.Summary)
	assert.Equal(t, domain.QualityComplete, result.Quality)
	assert.Equal(t, 2, result.DocumentCount)
	assert.Equal(t, 1, result.ChunkCount)
	assert.Equal(t, map[string]string{
		"Цемент": "цемент м500 купить оптом",
		"Песок":  "песок речной цена",
	}, result.QueriesMap())

	prompt := llm.userMessage(0)
	first := strings.Index(prompt, "==== DOCUMENT: tz.txt ====")
	second := strings.Index(prompt, "==== DOCUMENT: contract.txt ====")
	assert.True(t, first >= 0 && second > first, "documents keep input order")

	assert.Equal(t, []domain.ProgressStage{
		domain.StageExtracting, domain.StagePlanning, domain.StageChunk, domain.StageDone,
	}, sink.stages())
}

func TestAnalyse_ThreeChunksFourCalls(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{answers: []string{"часть А", "часть Б", "часть В", finalAnswer}}
	// Each document block is a little over 1000 characters, so no two fit together.
	svc := newTestService(llm, 1500)
	sink := &recordingSink{}

	files := []domain.SourceFile{
		writeFile(t, dir, "a.txt", strings.Repeat("а", 1000)),
		writeFile(t, dir, "b.txt", strings.Repeat("б", 1000)),
		writeFile(t, dir, "c.txt", strings.Repeat("в", 1000)),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Tender:   testTender,
		Files:    files,
		Progress: sink,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, llm.callCount())
	assert.Equal(t, 3, result.ChunkCount)
	assert.Equal(t, finalAnswer, result.Summary, "final result is the reduce output")
	assert.Equal(t, domain.QualityComplete, result.Quality)
	assert.Len(t, result.SearchQueries, 2)

	assert.Contains(t, llm.userMessage(0), "часть 1 из 3")
	assert.Contains(t, llm.userMessage(1), "часть 2 из 3")
	assert.Contains(t, llm.userMessage(2), "часть 3 из 3")
	assert.Contains(t, llm.userMessage(1), "==== DOCUMENT: b.txt ====")

	reduce := llm.userMessage(3)
	for _, part := range []string{"часть А", "часть Б", "часть В"} {
		assert.Contains(t, reduce, part)
	}

	assert.Equal(t, []domain.ProgressStage{
		domain.StageExtracting, domain.StagePlanning,
		domain.StageChunk, domain.StageChunk, domain.StageChunk,
		domain.StageReducing, domain.StageDone,
	}, sink.stages())
	assert.Equal(t, 2, sink.events[3].Part)
	assert.Equal(t, 3, sink.events[3].Total)
}

func TestAnalyse_ChunkFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{
		answers: []string{"часть А", "", "часть В", finalAnswer},
		failOn:  map[int]error{2: errors.New("rate limit exceeded")},
	}
	svc := newTestService(llm, 1500)

	files := []domain.SourceFile{
		writeFile(t, dir, "a.txt", strings.Repeat("а", 1000)),
		writeFile(t, dir, "b.txt", strings.Repeat("б", 1000)),
		writeFile(t, dir, "c.txt", strings.Repeat("в", 1000)),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{Files: files})

	require.NoError(t, err)
	assert.Equal(t, 4, llm.callCount(), "remaining chunks are still attempted")
	assert.Equal(t, domain.QualityPartial, result.Quality)
	assert.Equal(t, finalAnswer, result.Summary)
	assert.Contains(t, llm.userMessage(3), "[Ошибка анализа части 2: rate limit exceeded]")
}

func TestAnalyse_ReduceFailure(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{failOn: map[int]error{3: errors.New("service unavailable")}}
	svc := newTestService(llm, 1500)

	files := []domain.SourceFile{
		writeFile(t, dir, "a.txt", strings.Repeat("а", 1000)),
		writeFile(t, dir, "b.txt", strings.Repeat("б", 1000)),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{Files: files})

	require.NoError(t, err)
	assert.Equal(t, 3, llm.callCount())
	assert.Equal(t, "[Ошибка анализа: service unavailable]", result.Summary)
	assert.Equal(t, domain.QualityPartial, result.Quality)
	assert.False(t, result.HasQueries())
}

func TestAnalyse_EndToEnd_MixedFiles(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{answers: []string{finalAnswer}}

	settings := domain.DefaultAnalysisSettings()
	pipeline, err := postprocessors.Build(registryWithDefaults(), settings.PipelineConfig())
	require.NoError(t, err)
	svc := NewAnalysisService(newTestRegistry(), pipeline, chunker.New(), llm, domain.DefaultAppSettings().LLM)

	notice := "Требования к товару: цемент М500, ГОСТ 31108. Количество 20 т.\n" +
		"Срок поставки: 10 рабочих дней. Упаковка: мешки по 50 кг.\n" +
		"Цена договора включает доставку. Гарантия качества 12 месяцев."
	require.Less(t, len([]rune(notice)), 250)

	files := []domain.SourceFile{
		writeFile(t, dir, "notice.txt", notice),
		writeFile(t, dir, "installer.exe", "MZ\x90\x00\x03"),
		writeFile(t, dir, "broken.pdf", "%PDF-1.4\nthis is not a real pdf"),
	}
	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Tender: testTender,
		Files:  files,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.DocumentCount)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, finalAnswer, result.Summary)

	prompt := llm.userMessage(0)
	assert.Contains(t, prompt, "==== DOCUMENT: notice.txt ====\n"+notice)
	assert.NotContains(t, prompt, "installer.exe")
	assert.NotContains(t, prompt, "broken.pdf")
}

func TestAnalyse_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{}
	svc := newTestService(llm, domain.DefaultChunkLimit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyse(ctx, driving.AnalysisRequest{
		Files: []domain.SourceFile{writeFile(t, dir, "a.txt", "цена")},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, llm.callCount())
}

func TestAnalyse_NilProgressSink(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{answers: []string{finalAnswer}}
	svc := newTestService(llm, domain.DefaultChunkLimit)

	result, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Files: []domain.SourceFile{writeFile(t, dir, "a.txt", "цена договора")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.QualityComplete, result.Quality)
}

func TestAnalyse_ProgressFuncAdapter(t *testing.T) {
	var messages []string
	llm := &mockLLMService{}
	svc := newTestService(llm, domain.DefaultChunkLimit)

	_, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Progress: driving.ProgressFunc(func(_ context.Context, e domain.ProgressEvent) {
			messages = append(messages, e.Message)
		}),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Извлекаю текст из документов (0)...", SummaryNoDocuments}, messages)
}

func TestAnalysisService_ExtractQueries(t *testing.T) {
	svc := newTestService(&mockLLMService{}, domain.DefaultChunkLimit)

	queries := svc.ExtractQueries(finalAnswer)

	require.Len(t, queries, 2)
	assert.Equal(t, "Песок", queries[1].Label)
}

func TestAnalysisService_SetPromptStore(t *testing.T) {
	dir := t.TempDir()
	llm := &mockLLMService{}
	svc := newTestService(llm, domain.DefaultChunkLimit)
	svc.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		"analyse_single": "ДОКУМЕНТЫ: {{.Text}}",
	}})

	_, err := svc.Analyse(context.Background(), driving.AnalysisRequest{
		Files: []domain.SourceFile{writeFile(t, dir, "a.txt", "цена")},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(llm.userMessage(0), "ДОКУМЕНТЫ: ==== DOCUMENT: a.txt ===="))
}

func registryWithDefaults() *postprocessors.Registry {
	r := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(r)
	return r
}
