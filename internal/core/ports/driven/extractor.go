package driven

import (
	"context"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// Extractor pulls plain text out of one file format.
// Each extractor handles a fixed set of lowercase extensions (e.g. ".pdf").
type Extractor interface {
	// SupportedExtensions returns the extensions this extractor handles,
	// including the leading dot.
	SupportedExtensions() []string

	// Extract returns the plain text of the file.
	// An empty string with a nil error means the file holds no text.
	Extract(ctx context.Context, file domain.SourceFile) (string, error)
}

// ExtractorRegistry dispatches files to extractors by extension.
//
// The registry is the failure boundary of extraction: no error or panic from
// an extractor escapes it. A file that cannot be read is logged and reported
// as contributing no text.
type ExtractorRegistry interface {
	// Extract returns the extracted document and true, or nil and false when
	// the file is unsupported, oversized, unreadable or empty.
	Extract(ctx context.Context, file domain.SourceFile) (*domain.ExtractedDocument, bool)

	// Register adds an extractor. Later registrations win for shared extensions.
	Register(extractor Extractor)

	// SupportedExtensions returns every registered extension, sorted.
	SupportedExtensions() []string
}
