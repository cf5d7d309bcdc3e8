package extractors

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches files to extractors by lowercase extension.
type Registry struct {
	mu          sync.RWMutex
	byExt       map[string]driven.Extractor
	maxFileSize int64
}

// Option configures a Registry.
type Option func(*Registry)

// WithMaxFileSize skips files larger than n bytes. Zero disables the check.
func WithMaxFileSize(n int64) Option {
	return func(r *Registry) {
		r.maxFileSize = n
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byExt:       make(map[string]driven.Extractor),
		maxFileSize: domain.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an extractor for each of its extensions.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range e.SupportedExtensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract returns the text of file, or false when the file contributes none.
// Failures are logged and never returned.
func (r *Registry) Extract(ctx context.Context, file domain.SourceFile) (doc *domain.ExtractedDocument, ok bool) {
	log := logger.With(logger.Fields{"file": file.Name()})

	defer func() {
		if rec := recover(); rec != nil {
			log.Warnf("extractor panicked: %v", rec)
			doc, ok = nil, false
		}
	}()

	text, err := r.extract(ctx, file)
	if err != nil {
		log.Warnf("skipping file: %v", err)
		return nil, false
	}
	if strings.TrimSpace(text) == "" {
		log.Debug("file contains no text")
		return nil, false
	}

	return &domain.ExtractedDocument{
		ID:   uuid.New().String(),
		Name: file.Name(),
		Text: text,
	}, true
}

func (r *Registry) extract(ctx context.Context, file domain.SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(file.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: is a directory", domain.ErrInvalidInput)
	}
	if r.maxFileSize > 0 && info.Size() > r.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes", domain.ErrFileTooLarge, info.Size())
	}

	ext := file.Ext
	if ext == "" {
		ext = sniffExtension(file.Path)
		file.Ext = ext
	}

	r.mu.RLock()
	e, found := r.byExt[ext]
	r.mu.RUnlock()
	if !found {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}

	logger.Debug("extracting %s with %T", file.Name(), e)
	return e.Extract(ctx, file)
}

// sniffExtension detects the extension from file content.
// Returns "" when the content is not recognised.
func sniffExtension(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt.Extension())
}
