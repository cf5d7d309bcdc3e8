// Package image extracts text from scanned pages with OCR.
package image

import (
	"context"

	"github.com/custodia-labs/tendera/cgo/tesseract"
	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Recogniser performs OCR on an image file.
type Recogniser interface {
	Recognise(ctx context.Context, path string) (string, error)
}

// Extractor handles raster images.
type Extractor struct {
	ocr Recogniser
}

// New creates an image extractor backed by Tesseract (Russian and English).
func New() *Extractor {
	return NewWithRecogniser(tesseract.New())
}

// NewWithRecogniser creates an image extractor with a custom OCR engine.
func NewWithRecogniser(ocr Recogniser) *Extractor {
	return &Extractor{ocr: ocr}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png"}
}

// Extract runs OCR on the image.
func (e *Extractor) Extract(ctx context.Context, file domain.SourceFile) (string, error) {
	return e.ocr.Recognise(ctx, file.Path)
}
