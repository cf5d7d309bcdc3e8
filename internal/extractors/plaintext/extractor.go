package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".txt", ".csv"}
}

// Extract reads the file as text.
// Valid UTF-8 is returned as is. Anything else is tried as Windows-1251,
// the usual encoding of Russian text exports, and invalid bytes are dropped.
func (e *Extractor) Extract(_ context.Context, file domain.SourceFile) (string, error) {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return Decode(content), nil
}

// Decode converts raw bytes to text.
func Decode(content []byte) string {
	content = trimBOM(content)
	if utf8.Valid(content) {
		return string(content)
	}
	if decoded, err := charmap.Windows1251.NewDecoder().Bytes(content); err == nil && looksCyrillic(decoded) {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(content), "")
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

// looksCyrillic reports whether at least a third of the letters are Cyrillic.
func looksCyrillic(b []byte) bool {
	var letters, cyr int
	for _, r := range string(b) {
		switch {
		case r >= 'А' && r <= 'я', r == 'ё', r == 'Ё':
			letters++
			cyr++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letters++
		}
	}
	return letters > 0 && cyr*3 >= letters
}
