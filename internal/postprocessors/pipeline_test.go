package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// mockProcessor is a test processor that transforms text with fn.
type mockProcessor struct {
	name string
	fn   func(string) string
	err  error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.fn != nil {
		return m.fn(text), nil
	}
	return text, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	p := NewPipeline()

	_, err := p.Process(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()
	doc := &domain.ExtractedDocument{Name: "a.txt", Text: "test content"}

	out, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "a.txt" || out.Text != "test content" {
		t.Errorf("expected passthrough, got %+v", out)
	}
}

func TestPipeline_Process_MultipleProcessors(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "first", fn: func(s string) string { return s + "1" }},
		&mockProcessor{name: "second", fn: func(s string) string { return s + "2" }},
	)

	out, err := p.Process(context.Background(), &domain.ExtractedDocument{Text: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "x12" {
		t.Errorf("expected processors in order, got %q", out.Text)
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")
	p := NewPipeline(&mockProcessor{name: "failing", err: expectedErr})

	_, err := p.Process(context.Background(), &domain.ExtractedDocument{Text: "x"})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped processor error, got %v", err)
	}
}

func TestBuild_FromAnalysisSettings(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := Build(r, domain.DefaultPipelineConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestBuild_UnknownProcessor(t *testing.T) {
	r := NewRegistry()

	_, err := Build(r, domain.PipelineConfig{Processors: []string{"stemmer"}})
	if err == nil {
		t.Error("expected error for unknown processor")
	}
}
