package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/logger"
	"github.com/custodia-labs/tendera/internal/prompts"
)

// Ensure Summariser accepts custom prompts.
var _ driven.PromptStoreAware = (*Summariser)(nil)

// promptData is the data every analysis template is rendered with.
type promptData struct {
	Tender domain.TenderInfo
	Text   string
	Part   int
	Total  int
}

// Summariser sends corpus chunks to the language model.
// It never returns an error: failures are carried in the LLMResult.
type Summariser struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	opts        driven.ChatOptions
}

// NewSummariser creates a summariser calling llm with the given sampling settings.
func NewSummariser(llm driven.LLMService, temperature float64, maxTokens int) *Summariser {
	return &Summariser{
		llm: llm,
		opts: driven.ChatOptions{
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the built-in templates are used.
func (s *Summariser) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Single analyses a corpus that fits in one request.
func (s *Summariser) Single(ctx context.Context, tender domain.TenderInfo, text string) domain.LLMResult {
	return s.call(ctx, driven.PromptAnalyseSingle, promptData{Tender: tender, Text: text}, 0)
}

// Chunk analyses part of a multi-chunk corpus. Part is 1-based.
func (s *Summariser) Chunk(ctx context.Context, tender domain.TenderInfo, chunk domain.Chunk, total int) domain.LLMResult {
	part := chunk.Index + 1
	return s.call(ctx, driven.PromptAnalyseChunk, promptData{
		Tender: tender,
		Text:   chunk.Text,
		Part:   part,
		Total:  total,
	}, part)
}

// Reduce combines per-chunk answers into one report.
// Failed chunks contribute their inline error string.
func (s *Summariser) Reduce(ctx context.Context, tender domain.TenderInfo, parts []domain.LLMResult) domain.LLMResult {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "=== Часть %d из %d ===\n", i+1, len(parts))
		b.WriteString(p.Display())
	}
	return s.call(ctx, driven.PromptReduce, promptData{
		Tender: tender,
		Text:   b.String(),
		Total:  len(parts),
	}, 0)
}

func (s *Summariser) call(ctx context.Context, name string, data promptData, part int) domain.LLMResult {
	system, err := s.render(driven.PromptSystem, data)
	if err != nil {
		return domain.LLMResult{Err: err, Part: part}
	}
	user, err := s.render(name, data)
	if err != nil {
		return domain.LLMResult{Err: err, Part: part}
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	logger.Debug("LLM request %s: model=%s part=%d prompt_chars=%d",
		name, s.llm.ModelName(), part, len([]rune(user)))

	answer, err := s.llm.Chat(ctx, messages, s.opts)
	if err != nil {
		logger.With(logger.Fields{"prompt": name, "part": part}).Warnf("LLM request failed: %v", err)
		return domain.LLMResult{Err: err, Part: part}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return domain.LLMResult{Err: fmt.Errorf("%w: empty answer", domain.ErrNoContent), Part: part}
	}
	return domain.LLMResult{Text: answer, Part: part}
}

// render executes the named template. A user template that fails to parse
// or execute falls back to the built-in one.
func (s *Summariser) render(name string, data promptData) (string, error) {
	if s.promptStore != nil {
		if src, err := s.promptStore.Load(name); err == nil {
			out, err := execute(name, src, data)
			if err == nil {
				return out, nil
			}
			logger.Warn("Custom prompt %q is invalid, using built-in: %v", name, err)
		}
	}

	src, ok := prompts.Default(name)
	if !ok {
		return "", fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
	}
	return execute(name, src, data)
}

func execute(name, src string, data promptData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse prompt %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return buf.String(), nil
}
