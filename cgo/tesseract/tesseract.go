//go:build cgo

package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// DefaultLanguages are the Tesseract language packs used for tender scans.
var DefaultLanguages = []string{"rus", "eng"}

// Engine recognises text in image files.
// A fresh Tesseract client is created per call; clients are not goroutine-safe.
type Engine struct {
	languages []string
}

// New creates an OCR engine for the given languages.
// No languages means DefaultLanguages.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &Engine{languages: languages}
}

// Available reports whether OCR was compiled in.
func (e *Engine) Available() bool {
	return true
}

// Recognise returns the text found in the image at path.
func (e *Engine) Recognise(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("%w: tesseract languages: %v", domain.ErrExtractionFailed, err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("%w: tesseract image: %v", domain.ErrExtractionFailed, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: tesseract: %v", domain.ErrExtractionFailed, err)
	}
	return text, nil
}
