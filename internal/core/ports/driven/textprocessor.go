package driven

import (
	"context"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// TextProcessor transforms document text (e.g. compression, normalisation).
// Processors are chained in a pipeline.
type TextProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the transformed text.
	Process(ctx context.Context, text string) (string, error)
}

// TextPipeline chains multiple TextProcessors.
type TextPipeline interface {
	// Process runs the document text through all processors in order.
	Process(ctx context.Context, doc *domain.ExtractedDocument) (*domain.CompressedDocument, error)
}

// ChunkPlanner decides how a corpus is split into model requests.
type ChunkPlanner interface {
	// Plan returns the ordered chunks for the corpus text.
	// Concatenating the chunks reproduces the corpus exactly.
	Plan(corpus string) domain.Plan
}
