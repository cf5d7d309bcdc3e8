package driving

import (
	"context"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// AnalysisService turns a tender's documents into a summary and a set of
// supplier-search queries.
type AnalysisService interface {
	// Analyse extracts, compresses and summarises the files.
	// Per-file and per-chunk failures degrade the result instead of failing it.
	// An error is returned only when the service cannot run at all
	// (no LLM configured, cancelled context).
	Analyse(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResult, error)

	// ExtractQueries parses supplier-search queries out of a free-form answer.
	ExtractQueries(summary string) []domain.SearchQuery
}

// AnalysisRequest is one analysis call.
type AnalysisRequest struct {
	// Tender is the metadata passed through to prompts and the result.
	Tender domain.TenderInfo

	// Files are the downloaded documents in caller order.
	Files []domain.SourceFile

	// Progress receives status notifications. May be nil.
	Progress ProgressSink
}

// ProgressSink receives human-readable status notifications during analysis.
// Implementations must be safe to call from the analysing goroutine and
// should not block for long.
type ProgressSink interface {
	Notify(ctx context.Context, event domain.ProgressEvent)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(ctx context.Context, event domain.ProgressEvent)

// Notify calls f.
func (f ProgressFunc) Notify(ctx context.Context, event domain.ProgressEvent) {
	f(ctx, event)
}
