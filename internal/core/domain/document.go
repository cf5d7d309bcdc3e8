package domain

import (
	"strings"
	"unicode/utf8"
)

// DocumentDelimiter opens the header line that frames every document in a
// Corpus. Splitting corpus text on it recovers document boundaries.
const DocumentDelimiter = "==== DOCUMENT: "

// documentHeaderClose terminates the header line.
const documentHeaderClose = " ===="

// ExtractedDocument is the plain text pulled out of one SourceFile.
// It is discarded once folded into a Corpus.
type ExtractedDocument struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the display name of the originating file.
	Name string

	// Text is the raw extracted text.
	Text string
}

// CompressedDocument is an ExtractedDocument reduced to its decision-relevant
// lines. It exists only for the duration of one analysis call.
type CompressedDocument struct {
	// Name is the display name of the originating file.
	Name string

	// Text is the compressed text.
	Text string
}

// Block returns the document framed with its delimiter header.
func (d CompressedDocument) Block() string {
	var b strings.Builder
	b.Grow(len(DocumentDelimiter) + len(d.Name) + len(documentHeaderClose) + len(d.Text) + 3)
	b.WriteString(DocumentDelimiter)
	b.WriteString(d.Name)
	b.WriteString(documentHeaderClose)
	b.WriteString("\n")
	b.WriteString(d.Text)
	b.WriteString("\n\n")
	return b.String()
}

// Corpus is the ordered sequence of compressed documents for one request.
type Corpus []CompressedDocument

// Text concatenates every document block in order.
func (c Corpus) Text() string {
	var b strings.Builder
	for _, doc := range c {
		b.WriteString(doc.Block())
	}
	return b.String()
}

// Len returns the corpus length in characters.
func (c Corpus) Len() int {
	return utf8.RuneCountInString(c.Text())
}

// Chunk is a contiguous run of whole documents sized for one model request.
type Chunk struct {
	// Index is the zero-based position of the chunk within its plan.
	Index int

	// Text is the concatenated document blocks of this chunk.
	Text string
}

// Len returns the chunk length in characters.
func (c Chunk) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Plan is the request plan decided by the chunk planner.
type Plan struct {
	// Chunks holds the ordered chunks. A single-request plan has exactly one.
	Chunks []Chunk

	// Single is true when the whole corpus fits in one request.
	Single bool
}

// Len returns the number of chunks in the plan.
func (p Plan) Len() int {
	return len(p.Chunks)
}

// Text reassembles the planned chunks in order.
func (p Plan) Text() string {
	var b strings.Builder
	for _, c := range p.Chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}
