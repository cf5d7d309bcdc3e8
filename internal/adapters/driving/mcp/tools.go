package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/logger"
)

// TenderInput is the tender metadata accepted by analyse_documents.
type TenderInput struct {
	Number             string `json:"number,omitempty" jsonschema:"registry number of the tender"`
	Customer           string `json:"customer,omitempty" jsonschema:"procuring organisation"`
	Subject            string `json:"subject,omitempty" jsonschema:"subject of the procurement"`
	Price              string `json:"price,omitempty" jsonschema:"initial maximum contract price as displayed"`
	PublicationDate    string `json:"publication_date,omitempty" jsonschema:"publication date"`
	SubmissionDeadline string `json:"submission_deadline,omitempty" jsonschema:"application deadline"`
	Status             string `json:"status,omitempty" jsonschema:"registry status"`
	DeliveryPlace      string `json:"delivery_place,omitempty" jsonschema:"place of delivery"`
	DeliveryTerms      string `json:"delivery_terms,omitempty" jsonschema:"delivery schedule"`
}

func (t TenderInput) toDomain() domain.TenderInfo {
	return domain.TenderInfo{
		Number:             t.Number,
		Customer:           t.Customer,
		Subject:            t.Subject,
		Price:              t.Price,
		PublicationDate:    t.PublicationDate,
		SubmissionDeadline: t.SubmissionDeadline,
		Status:             t.Status,
		DeliveryPlace:      t.DeliveryPlace,
		DeliveryTerms:      t.DeliveryTerms,
	}
}

// AnalyseInput is the input schema for the analyse_documents tool.
type AnalyseInput struct {
	Files  []string    `json:"files" jsonschema:"paths of downloaded tender documents on the server machine"`
	Tender TenderInput `json:"tender,omitempty" jsonschema:"tender metadata used in the prompts"`
}

// QueryOutput is one supplier-search query.
type QueryOutput struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// AnalyseOutput is the output schema for the analyse_documents tool.
type AnalyseOutput struct {
	Summary       string        `json:"summary"`
	SearchQueries []QueryOutput `json:"search_queries"`
	DocumentCount int           `json:"document_count"`
	ChunkCount    int           `json:"chunk_count"`
	Quality       string        `json:"quality"`
}

// ExtractQueriesInput is the input schema for the extract_search_queries tool.
type ExtractQueriesInput struct {
	Summary string `json:"summary" jsonschema:"analysis text containing a search queries section"`
}

// ExtractQueriesOutput is the output schema for the extract_search_queries tool.
type ExtractQueriesOutput struct {
	SearchQueries []QueryOutput `json:"search_queries"`
	Count         int           `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyse_documents",
		Description: "Analyse downloaded tender documents (PDF, DOCX, DOC, XLSX, XLS, " +
			"archives, images) and return a summary with supplier-search queries",
	}, s.handleAnalyse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_search_queries",
		Description: "Parse the numbered supplier-search queries out of an analysis text",
	}, s.handleExtractQueries)
}

// handleAnalyse handles the analyse_documents tool invocation.
func (s *Server) handleAnalyse(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AnalyseInput,
) (*mcp.CallToolResult, AnalyseOutput, error) {
	if len(input.Files) == 0 {
		return nil, AnalyseOutput{}, ErrNoFiles
	}

	files := make([]domain.SourceFile, 0, len(input.Files))
	for _, path := range input.Files {
		files = append(files, domain.NewSourceFile(path, ""))
	}

	result, err := s.ports.Analysis.Analyse(ctx, driving.AnalysisRequest{
		Tender:   input.Tender.toDomain(),
		Files:    files,
		Progress: progressSink(req),
	})
	if err != nil {
		return nil, AnalyseOutput{}, err
	}

	return nil, AnalyseOutput{
		Summary:       result.Summary,
		SearchQueries: toQueryOutputs(result.SearchQueries),
		DocumentCount: result.DocumentCount,
		ChunkCount:    result.ChunkCount,
		Quality:       string(result.Quality),
	}, nil
}

// handleExtractQueries handles the extract_search_queries tool invocation.
func (s *Server) handleExtractQueries(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractQueriesInput,
) (*mcp.CallToolResult, ExtractQueriesOutput, error) {
	queries := toQueryOutputs(s.ports.Analysis.ExtractQueries(input.Summary))
	return nil, ExtractQueriesOutput{
		SearchQueries: queries,
		Count:         len(queries),
	}, nil
}

func toQueryOutputs(queries []domain.SearchQuery) []QueryOutput {
	out := make([]QueryOutput, len(queries))
	for i, q := range queries {
		out[i] = QueryOutput{Label: q.Label, Query: q.Query}
	}
	return out
}

// progressSink forwards pipeline progress as MCP progress notifications
// when the client asked for them. Returns nil otherwise.
func progressSink(req *mcp.CallToolRequest) driving.ProgressSink {
	if req == nil || req.Session == nil || req.Params == nil {
		return nil
	}
	token := req.Params.GetProgressToken()
	if token == nil {
		return nil
	}
	return newProgressSink(token, req.Session.NotifyProgress)
}

type notifyFunc func(ctx context.Context, params *mcp.ProgressNotificationParams) error

// newProgressSink numbers events 1, 2, 3... so progress only ever grows.
// Total is left unset: the number of notifications depends on the plan,
// which is not known when the first one is sent. Chunk events already
// carry "часть N из M" in their message.
func newProgressSink(token any, notify notifyFunc) driving.ProgressSink {
	var mu sync.Mutex
	step := 0
	return driving.ProgressFunc(func(ctx context.Context, event domain.ProgressEvent) {
		mu.Lock()
		step++
		params := &mcp.ProgressNotificationParams{
			ProgressToken: token,
			Message:       event.Message,
			Progress:      float64(step),
		}
		mu.Unlock()
		if err := notify(ctx, params); err != nil {
			logger.Debug("mcp progress notification failed: %v", err)
		}
	})
}
