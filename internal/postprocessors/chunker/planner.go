// Package chunker plans how a corpus is split into model requests.
//
// Chunks are cut only at document boundaries and documents are never
// reordered. A single document larger than the limit becomes one oversized
// chunk; splitting inside a document is not attempted.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
)

// Ensure Planner implements the interface.
var _ driven.ChunkPlanner = (*Planner)(nil)

// Planner packs documents greedily into chunks of bounded length.
type Planner struct {
	limit int
}

// Option configures the planner.
type Option func(*Planner)

// WithLimit sets the per-request limit in characters.
func WithLimit(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.limit = n
		}
	}
}

// New creates a planner with the given options.
func New(opts ...Option) *Planner {
	p := &Planner{limit: domain.DefaultChunkLimit}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the request plan for corpus.
// An empty corpus yields an empty plan.
func (p *Planner) Plan(corpus string) domain.Plan {
	if corpus == "" {
		return domain.Plan{}
	}
	if utf8.RuneCountInString(corpus) <= p.limit {
		return domain.Plan{
			Chunks: []domain.Chunk{{Index: 0, Text: corpus}},
			Single: true,
		}
	}

	var (
		chunks  []domain.Chunk
		current strings.Builder
		size    int
	)
	emit := func() {
		chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: current.String()})
		current.Reset()
		size = 0
	}

	for _, frag := range SplitDocuments(corpus) {
		n := utf8.RuneCountInString(frag)
		if size > 0 && size+n > p.limit {
			emit()
		}
		current.WriteString(frag)
		size += n
	}
	if size > 0 {
		emit()
	}

	return domain.Plan{Chunks: chunks}
}

// SplitDocuments cuts corpus before every document delimiter. Each fragment
// keeps its delimiter, so the fragments concatenate back to corpus. Empty
// fragments are dropped.
func SplitDocuments(corpus string) []string {
	var frags []string
	rest := corpus
	for rest != "" {
		next := strings.Index(rest[1:], domain.DocumentDelimiter)
		if next < 0 {
			frags = append(frags, rest)
			break
		}
		frags = append(frags, rest[:next+1])
		rest = rest[next+1:]
	}
	return frags
}
