// Package services implements the driving ports.
//
// The analysis service owns the pipeline from source files to a single
// tender summary. Chunk summaries go through the summariser, which renders
// prompt templates and calls the LLM port; the query extractor parses the
// reduced summary back into search queries. Settings resolves stored
// values with environment fallbacks.
//
// Nothing here talks to the network or the filesystem directly.
package services
