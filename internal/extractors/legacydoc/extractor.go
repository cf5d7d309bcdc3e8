// Package legacydoc extracts text from binary Word 97-2003 (.doc) files
// using the antiword command-line tool.
package legacydoc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const toolName = "antiword"

// ErrAntiwordNotFound is returned when antiword is not on PATH.
var ErrAntiwordNotFound = fmt.Errorf("%w: antiword is required for .doc files", domain.ErrToolNotFound)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor handles legacy Word documents.
type Extractor struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New creates an extractor that runs the real antiword binary.
func New() *Extractor {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates an extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner, lookPath: exec.LookPath}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".doc"}
}

// Extract runs antiword on the file and returns its UTF-8 output.
func (e *Extractor) Extract(ctx context.Context, file domain.SourceFile) (string, error) {
	if _, err := e.lookPath(toolName); err != nil {
		return "", ErrAntiwordNotFound
	}

	out, err := e.runner.Run(ctx, toolName, "-m", "UTF-8.txt", file.Path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: antiword failed: %s", domain.ErrExtractionFailed, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: antiword failed: %v", domain.ErrExtractionFailed, err)
	}

	return strings.ToValidUTF8(string(out), ""), nil
}

// CheckAvailable returns nil if antiword is on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrAntiwordNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing antiword.
func InstallInstructions() string {
	return `antiword is required to read .doc files.

  macOS:          brew install antiword
  Debian/Ubuntu:  apt install antiword
  Fedora:         dnf install antiword`
}
