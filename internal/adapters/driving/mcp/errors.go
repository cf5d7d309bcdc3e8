// Package mcp provides an MCP (Model Context Protocol) server adapter for Tendera.
// It lets AI assistants analyse tender documents and extract supplier-search
// queries through the same pipeline as the CLI.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrNoFiles is returned by analyse_documents when no file paths are given.
var ErrNoFiles = errors.New("mcp: at least one file path is required")
