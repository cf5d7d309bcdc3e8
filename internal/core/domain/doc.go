// Package domain defines the core business entities for Tendera.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceFile: A downloaded tender document on local disk
//   - ExtractedDocument: Plain text pulled out of one SourceFile
//   - CompressedDocument: Extracted text reduced to its decision-relevant lines
//   - Corpus: Ordered, delimited concatenation of compressed documents
//   - Chunk / Plan: Document-boundary-respecting slices sized for one model request
//   - AnalysisResult: Summary text plus the item to search-query mapping
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
