package extractors

import (
	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/extractors/archive"
	"github.com/custodia-labs/tendera/internal/extractors/docx"
	"github.com/custodia-labs/tendera/internal/extractors/image"
	"github.com/custodia-labs/tendera/internal/extractors/legacydoc"
	"github.com/custodia-labs/tendera/internal/extractors/pdf"
	"github.com/custodia-labs/tendera/internal/extractors/plaintext"
	"github.com/custodia-labs/tendera/internal/extractors/spreadsheet"
)

// NewDefaultRegistry creates a registry with every built-in extractor.
func NewDefaultRegistry(settings domain.AnalysisSettings) *Registry {
	r := NewRegistry(WithMaxFileSize(settings.MaxFileSize))
	r.Register(plaintext.New())
	r.Register(docx.New())
	r.Register(legacydoc.New())
	r.Register(pdf.New())
	r.Register(spreadsheet.New())
	r.Register(image.New())
	r.Register(archive.New(r,
		archive.WithMaxDepth(settings.MaxArchiveDepth),
		archive.WithMaxMemberSize(settings.MaxFileSize),
	))
	return r
}
