// Package archive extracts text from ZIP and RAR archives by unpacking each
// member to a temporary file and passing it back through the extractor
// registry. Member texts are framed with a "--- name ---" header.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

type depthKey struct{}

// Extractor handles .zip and .rar archives.
type Extractor struct {
	registry      driven.ExtractorRegistry
	maxDepth      int
	maxMemberSize int64
	tempDir       string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxDepth bounds archive-in-archive nesting.
func WithMaxDepth(n int) Option {
	return func(e *Extractor) {
		e.maxDepth = n
	}
}

// WithMaxMemberSize skips members that unpack to more than n bytes.
func WithMaxMemberSize(n int64) Option {
	return func(e *Extractor) {
		e.maxMemberSize = n
	}
}

// WithTempDir sets where members are unpacked. Empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(e *Extractor) {
		e.tempDir = dir
	}
}

// New creates an archive extractor that dispatches members to registry.
func New(registry driven.ExtractorRegistry, opts ...Option) *Extractor {
	e := &Extractor{
		registry:      registry,
		maxDepth:      domain.DefaultMaxArchiveDepth,
		maxMemberSize: domain.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".zip", ".rar"}
}

// Extract unpacks the archive and returns the framed texts of all members
// that yielded text, in archive order.
func (e *Extractor) Extract(ctx context.Context, file domain.SourceFile) (string, error) {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= e.maxDepth {
		return "", fmt.Errorf("%w: archive nesting deeper than %d", domain.ErrInvalidInput, e.maxDepth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	var texts []string
	visit := func(name string, r io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, ok := e.extractMember(ctx, name, r)
		if ok {
			texts = append(texts, fmt.Sprintf("--- %s ---\n%s", name, text))
		}
		return nil
	}

	var err error
	if file.Ext == ".rar" {
		err = walkRAR(file.Path, visit)
	} else {
		err = walkZIP(file.Path, visit)
	}
	if err != nil {
		if len(texts) == 0 || ctx.Err() != nil {
			return "", err
		}
		logger.Warn("archive %s: keeping %d members after error: %v", file.Name(), len(texts), err)
	}
	return strings.Join(texts, "\n\n"), nil
}

// extractMember writes one member to a temporary file and extracts it.
// The temporary file is removed before returning.
func (e *Extractor) extractMember(ctx context.Context, name string, r io.Reader) (string, bool) {
	tmp, err := os.CreateTemp(e.tempDir, "tendera-member-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		logger.Warn("archive member %s: %v", name, err)
		return "", false
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, e.maxMemberSize+1))
	closeErr := tmp.Close()
	if err != nil || closeErr != nil {
		logger.Warn("archive member %s: unpack failed: %v", name, firstErr(err, closeErr))
		return "", false
	}
	if n > e.maxMemberSize {
		logger.Warn("archive member %s: %v", name, domain.ErrFileTooLarge)
		return "", false
	}

	doc, ok := e.registry.Extract(ctx, domain.NewSourceFile(tmp.Name(), filepath.Base(name)))
	if !ok {
		return "", false
	}
	return doc.Text, true
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
