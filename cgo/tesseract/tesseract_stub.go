//go:build !cgo

package tesseract

import (
	"context"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// DefaultLanguages are the Tesseract language packs used for tender scans.
var DefaultLanguages = []string{"rus", "eng"}

// Engine recognises text in image files.
// This is a stub for builds without CGO.
type Engine struct {
	languages []string
}

// New creates an OCR engine.
// This is a stub for builds without CGO.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Engine{languages: languages}
}

// Available reports whether OCR was compiled in.
func (e *Engine) Available() bool {
	return false
}

// Recognise always fails in builds without CGO.
func (e *Engine) Recognise(_ context.Context, _ string) (string, error) {
	return "", domain.ErrOCRUnavailable
}
