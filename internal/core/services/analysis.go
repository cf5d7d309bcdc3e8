package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/logger"
)

// Ensure AnalysisService implements the interfaces.
var (
	_ driving.AnalysisService = (*AnalysisService)(nil)
	_ driven.PromptStoreAware = (*AnalysisService)(nil)
)

// Summaries returned when there is nothing to send to the model.
const (
	SummaryNoDocuments = "Документы для анализа не найдены"
	SummaryNoText      = "Не удалось извлечь текст из документов (файлов: %d). Проверьте форматы и содержимое файлов."
)

// AnalysisService runs the document-to-analysis pipeline:
// extract, compress, plan, summarise, reduce, parse queries.
type AnalysisService struct {
	extractors driven.ExtractorRegistry
	pipeline   driven.TextPipeline
	planner    driven.ChunkPlanner
	summariser *Summariser
}

// NewAnalysisService creates an analysis service.
// llm may be nil, in which case Analyse reports ErrLLMUnavailable.
func NewAnalysisService(
	extractors driven.ExtractorRegistry,
	pipeline driven.TextPipeline,
	planner driven.ChunkPlanner,
	llm driven.LLMService,
	settings domain.LLMSettings,
) *AnalysisService {
	s := &AnalysisService{
		extractors: extractors,
		pipeline:   pipeline,
		planner:    planner,
	}
	if llm != nil {
		s.summariser = NewSummariser(llm, settings.Temperature, settings.MaxTokens)
	}
	return s
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *AnalysisService) SetPromptStore(store driven.PromptStore) {
	if s.summariser != nil {
		s.summariser.SetPromptStore(store)
	}
}

// Analyse runs the pipeline for one request. Files are processed
// sequentially in input order and chunks are summarised in plan order.
func (s *AnalysisService) Analyse(ctx context.Context, req driving.AnalysisRequest) (*domain.AnalysisResult, error) {
	if s.summariser == nil {
		return nil, fmt.Errorf("%w: no language model configured", domain.ErrLLMUnavailable)
	}

	logger.Section("Analysis")
	logger.Debug("Tender %q: %d files", req.Tender.Number, len(req.Files))

	notify(ctx, req.Progress, domain.ProgressEvent{
		Stage:   domain.StageExtracting,
		Total:   len(req.Files),
		Message: fmt.Sprintf("Извлекаю текст из документов (%d)...", len(req.Files)),
	})

	corpus, err := s.buildCorpus(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	if len(corpus) == 0 {
		summary := SummaryNoDocuments
		if len(req.Files) > 0 {
			summary = fmt.Sprintf(SummaryNoText, len(req.Files))
		}
		logger.Info("No analysable text in %d files", len(req.Files))
		notify(ctx, req.Progress, domain.ProgressEvent{Stage: domain.StageDone, Message: summary})
		return &domain.AnalysisResult{
			Summary: summary,
			Input:   req.Tender,
			Quality: domain.QualityNoDocuments,
		}, nil
	}

	plan := s.planner.Plan(corpus.Text())
	total := plan.Len()
	logger.Debug("Corpus: %d documents, %d chars, %d chunks", len(corpus), corpus.Len(), total)

	notify(ctx, req.Progress, domain.ProgressEvent{
		Stage:   domain.StagePlanning,
		Total:   total,
		Message: planMessage(len(corpus), total),
	})

	final, degraded, err := s.summarise(ctx, req, plan)
	if err != nil {
		return nil, err
	}

	quality := domain.QualityComplete
	if degraded || !final.OK() {
		quality = domain.QualityPartial
	}

	result := &domain.AnalysisResult{
		Summary:       final.Display(),
		Input:         req.Tender,
		DocumentCount: len(corpus),
		ChunkCount:    total,
		Quality:       quality,
	}
	if final.OK() {
		result.SearchQueries = ParseSearchQueries(final.Text)
	}

	logger.Debug("Analysis %s: %d search queries", quality, len(result.SearchQueries))
	notify(ctx, req.Progress, domain.ProgressEvent{
		Stage:   domain.StageDone,
		Total:   total,
		Message: "Анализ завершён",
	})

	return result, nil
}

// ExtractQueries parses supplier-search queries out of a free-form answer.
func (s *AnalysisService) ExtractQueries(summary string) []domain.SearchQuery {
	return ParseSearchQueries(summary)
}

// buildCorpus extracts and compresses each file. Files that yield no text
// are skipped; only context cancellation is returned.
func (s *AnalysisService) buildCorpus(ctx context.Context, files []domain.SourceFile) (domain.Corpus, error) {
	corpus := make(domain.Corpus, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, ok := s.extractors.Extract(ctx, file)
		if !ok {
			continue
		}

		compressed, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			logger.With(logger.Fields{"file": file.Name()}).Warnf("compression failed: %v", err)
			continue
		}
		if compressed.Text == "" {
			logger.Debug("Skipping %s: empty after compression", file.Name())
			continue
		}

		logger.Debug("Document %s: %d -> %d chars", doc.Name, len([]rune(doc.Text)), len([]rune(compressed.Text)))
		corpus = append(corpus, *compressed)
	}
	return corpus, nil
}

// summarise issues one request per chunk, then a reduce request when
// there is more than one. degraded reports whether any chunk failed.
func (s *AnalysisService) summarise(
	ctx context.Context, req driving.AnalysisRequest, plan domain.Plan,
) (final domain.LLMResult, degraded bool, err error) {
	total := plan.Len()

	if total == 1 {
		notify(ctx, req.Progress, domain.ProgressEvent{
			Stage:   domain.StageChunk,
			Part:    1,
			Total:   1,
			Message: "Отправляю документы на анализ...",
		})
		return s.summariser.Single(ctx, req.Tender, plan.Chunks[0].Text), false, nil
	}

	results := make([]domain.LLMResult, 0, total)
	for _, chunk := range plan.Chunks {
		if err := ctx.Err(); err != nil {
			return domain.LLMResult{}, false, err
		}
		notify(ctx, req.Progress, domain.ProgressEvent{
			Stage:   domain.StageChunk,
			Part:    chunk.Index + 1,
			Total:   total,
			Message: fmt.Sprintf("Анализирую часть %d из %d...", chunk.Index+1, total),
		})

		res := s.summariser.Chunk(ctx, req.Tender, chunk, total)
		if !res.OK() {
			degraded = true
		}
		results = append(results, res)
	}

	if err := ctx.Err(); err != nil {
		return domain.LLMResult{}, false, err
	}
	notify(ctx, req.Progress, domain.ProgressEvent{
		Stage:   domain.StageReducing,
		Total:   total,
		Message: fmt.Sprintf("Объединяю результаты %d частей...", total),
	})
	return s.summariser.Reduce(ctx, req.Tender, results), degraded, nil
}

func planMessage(docs, chunks int) string {
	if chunks == 1 {
		return fmt.Sprintf("Документов с текстом: %d, анализ одним запросом", docs)
	}
	return fmt.Sprintf("Документов с текстом: %d, документация разбита на %d частей", docs, chunks)
}

// notify forwards event to sink when one is set.
func notify(ctx context.Context, sink driving.ProgressSink, event domain.ProgressEvent) {
	if sink == nil {
		return
	}
	sink.Notify(ctx, event)
}
