// Package compressor reduces document text to the lines that matter for a
// procurement decision: keyword-bearing and tabular lines.
//
// The filter is a lossy heuristic. When it keeps too few lines it is assumed
// to have misfired and the unfiltered lines are used instead.
package compressor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// EllipsisMarker joins the head and tail of a truncated text.
const EllipsisMarker = "\n...\n"

// separators mark tabular lines.
const separators = ";|\t"

// minSeparators is exclusive: a line needs more than this many separators.
const minSeparators = 2

// Processor compresses document text.
// It implements the TextProcessor interface.
type Processor struct {
	targetLength      int
	maxLineLength     int
	minLines          int
	truncateThreshold int
	head              int
	tail              int
	keywords          []string
}

// Option configures the compressor.
type Option func(*Processor)

// WithTargetLength sets the soft cap on output length in characters.
func WithTargetLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.targetLength = n
		}
	}
}

// WithMaxLineLength drops lines longer than n characters.
func WithMaxLineLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxLineLength = n
		}
	}
}

// WithMinLines sets the fallback threshold.
func WithMinLines(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLines = n
		}
	}
}

// WithKeywords replaces the keyword set. Matching is case-insensitive.
func WithKeywords(keywords []string) Option {
	return func(p *Processor) {
		if len(keywords) > 0 {
			p.keywords = lowerAll(keywords)
		}
	}
}

// WithTruncation sets head+tail truncation: output longer than threshold
// characters keeps only the first head and last tail characters.
func WithTruncation(threshold, head, tail int) Option {
	return func(p *Processor) {
		if threshold > 0 && head >= 0 && tail >= 0 && head+tail <= threshold {
			p.truncateThreshold = threshold
			p.head = head
			p.tail = tail
		}
	}
}

// New creates a compressor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		targetLength:      domain.DefaultTargetLength,
		maxLineLength:     domain.DefaultMaxLineLength,
		minLines:          domain.DefaultMinKeptLines,
		truncateThreshold: domain.DefaultTruncateThreshold,
		head:              domain.DefaultHeadChars,
		tail:              domain.DefaultTailChars,
		keywords:          lowerAll(domain.DefaultKeywords()),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "compressor"
}

// Process compresses text. It never fails.
func (p *Processor) Process(_ context.Context, text string) (string, error) {
	return p.Compress(text), nil
}

// Compress runs the line filter, the fallback policy and truncation.
func (p *Processor) Compress(text string) string {
	lines := p.candidateLines(text)

	kept := p.filter(lines)
	if len(kept) < p.minLines {
		kept = lines
	}

	return p.truncate(strings.Join(kept, "\n"))
}

// candidateLines returns trimmed, non-empty lines no longer than the limit.
func (p *Processor) candidateLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) > p.maxLineLength {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// filter keeps keyword and tabular lines, deduplicated by lowercase form.
// First occurrence wins.
func (p *Processor) filter(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !p.hasKeyword(lower) && !isTabular(line) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		kept = append(kept, line)
	}
	return kept
}

func (p *Processor) hasKeyword(lower string) bool {
	for _, kw := range p.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isTabular(line string) bool {
	n := 0
	for _, r := range line {
		if strings.ContainsRune(separators, r) {
			n++
			if n > minSeparators {
				return true
			}
		}
	}
	return false
}

// truncate keeps the head and tail of text longer than the threshold.
func (p *Processor) truncate(text string) string {
	if utf8.RuneCountInString(text) <= p.truncateThreshold {
		return text
	}
	runes := []rune(text)
	return string(runes[:p.head]) + EllipsisMarker + string(runes[len(runes)-p.tail:])
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}
