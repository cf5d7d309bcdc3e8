package mcp

import (
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
type Ports struct {
	// Analysis runs the document pipeline.
	Analysis driving.AnalysisService

	// Prompts exposes the active prompt templates as resources. Optional.
	Prompts driven.PromptStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
