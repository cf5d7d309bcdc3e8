package legacydoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error

	name string
	args []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func withTool(e *Extractor) *Extractor {
	e.lookPath = func(string) (string, error) { return "/usr/bin/antiword", nil }
	return e
}

func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("test output")}
	extractor := NewWithRunner(runner)
	require.NotNil(t, extractor)
	assert.Equal(t, runner, extractor.runner)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".doc"}, New().SupportedExtensions())
}

func TestExtract_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Проект договора\n\nСрок поставки: 30 дней\n")}
	extractor := withTool(NewWithRunner(runner))

	text, err := extractor.Extract(context.Background(), domain.NewSourceFile("/tmp/contract.doc", ""))

	require.NoError(t, err)
	assert.Contains(t, text, "Срок поставки: 30 дней")
	assert.Equal(t, "antiword", runner.name)
	assert.Equal(t, []string{"-m", "UTF-8.txt", "/tmp/contract.doc"}, runner.args)
}

func TestExtract_InvalidUTF8Dropped(t *testing.T) {
	runner := &mockRunner{output: []byte("цена\xff руб")}
	extractor := withTool(NewWithRunner(runner))

	text, err := extractor.Extract(context.Background(), domain.NewSourceFile("/tmp/a.doc", ""))

	require.NoError(t, err)
	assert.Equal(t, "цена руб", text)
}

func TestExtract_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("antiword crashed")}
	extractor := withTool(NewWithRunner(runner))

	text, err := extractor.Extract(context.Background(), domain.NewSourceFile("/tmp/a.doc", ""))

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "antiword failed")
	assert.Empty(t, text)
}

func TestExtract_ToolMissing(t *testing.T) {
	extractor := NewWithRunner(&mockRunner{})
	extractor.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := extractor.Extract(context.Background(), domain.NewSourceFile("/tmp/a.doc", ""))

	assert.ErrorIs(t, err, ErrAntiwordNotFound)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestCheckAvailable(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		assert.ErrorIs(t, CheckAvailable(), ErrAntiwordNotFound)
	})

	t.Run("on path", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("shell script stand-in")
		}
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "antiword"), []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("PATH", dir)
		assert.NoError(t, CheckAvailable())
	})
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "brew install antiword")
	assert.Contains(t, instructions, "apt install antiword")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
