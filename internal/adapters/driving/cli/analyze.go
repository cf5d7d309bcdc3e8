package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/core/services"
)

var (
	analyzeTender     domain.TenderInfo
	analyzeTenderFile string
	analyzeJSON       bool
	analyzeQuiet      bool
	analyzePageSize   int
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [files or directories...]",
	Aliases: []string{"analyse"},
	Short:   "Analyse tender documents",
	Long: `Extracts text from the given files, compresses it to the procurement-relevant
parts and asks the configured LLM for a summary, risks, a participation
recommendation and supplier-search queries.

Directories are read recursively. Unsupported or unreadable files are skipped.
Large document sets are analysed in parts and the answers combined.

Examples:
  tendera analyze ./0123300000124000001/
  tendera analyze tz.docx smeta.xlsx --number 0123300000124000001 --customer "МБОУ СОШ № 1"
  tendera analyze docs.zip --tender-json tender.json --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	flags := analyzeCmd.Flags()
	flags.StringVar(&analyzeTender.Number, "number", "", "tender registry number")
	flags.StringVar(&analyzeTender.Customer, "customer", "", "procuring organisation")
	flags.StringVar(&analyzeTender.Subject, "subject", "", "subject of the procurement")
	flags.StringVar(&analyzeTender.Price, "price", "", "initial maximum contract price")
	flags.StringVar(&analyzeTender.SubmissionDeadline, "deadline", "", "application deadline")
	flags.StringVar(&analyzeTender.DeliveryPlace, "delivery-place", "", "place of delivery")
	flags.StringVar(&analyzeTenderFile, "tender-json", "", "JSON file with the tender registry record")
	flags.BoolVar(&analyzeJSON, "json", false, "output the result as JSON")
	flags.BoolVarP(&analyzeQuiet, "quiet", "q", false, "do not print progress to stderr")
	flags.IntVar(&analyzePageSize, "page-size", 0, "split the summary into pages of this many characters")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	tender := analyzeTender
	if analyzeTenderFile != "" {
		tender, err = loadTenderFile(analyzeTenderFile, analyzeTender)
		if err != nil {
			return err
		}
	}

	req := driving.AnalysisRequest{Tender: tender, Files: files}
	if !analyzeQuiet {
		req.Progress = driving.ProgressFunc(func(_ context.Context, event domain.ProgressEvent) {
			cmd.PrintErrln(event.Message)
		})
	}

	result, err := analysisService.Analyse(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return outputAnalysisJSON(cmd, result)
	}
	outputAnalysisText(cmd, result, analyzePageSize)
	return nil
}

// tenderRecord is the JSON shape accepted by --tender-json.
type tenderRecord struct {
	Number             string `json:"number"`
	Customer           string `json:"customer"`
	Subject            string `json:"subject"`
	Price              string `json:"price"`
	PublicationDate    string `json:"publication_date"`
	SubmissionDeadline string `json:"submission_deadline"`
	Status             string `json:"status"`
	DeliveryPlace      string `json:"delivery_place"`
	DeliveryTerms      string `json:"delivery_terms"`
}

// loadTenderFile reads a registry record. Flags set on the command line
// take precedence over the file.
func loadTenderFile(path string, flags domain.TenderInfo) (domain.TenderInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.TenderInfo{}, fmt.Errorf("reading tender file: %w", err)
	}

	var rec tenderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.TenderInfo{}, fmt.Errorf("parsing tender file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.TenderInfo{}, fmt.Errorf("parsing tender file: %w", err)
	}

	return domain.TenderInfo{
		Number:             firstNonEmpty(flags.Number, rec.Number),
		Customer:           firstNonEmpty(flags.Customer, rec.Customer),
		Subject:            firstNonEmpty(flags.Subject, rec.Subject),
		Price:              firstNonEmpty(flags.Price, rec.Price),
		PublicationDate:    rec.PublicationDate,
		SubmissionDeadline: firstNonEmpty(flags.SubmissionDeadline, rec.SubmissionDeadline),
		Status:             rec.Status,
		DeliveryPlace:      firstNonEmpty(flags.DeliveryPlace, rec.DeliveryPlace),
		DeliveryTerms:      rec.DeliveryTerms,
		Raw:                raw,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type queryJSON struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

type analysisJSON struct {
	Number        string      `json:"number,omitempty"`
	Summary       string      `json:"summary"`
	SearchQueries []queryJSON `json:"search_queries"`
	DocumentCount int         `json:"document_count"`
	ChunkCount    int         `json:"chunk_count"`
	Quality       string      `json:"quality"`
}

func outputAnalysisJSON(cmd *cobra.Command, result *domain.AnalysisResult) error {
	out := analysisJSON{
		Number:        result.Input.Number,
		Summary:       result.Summary,
		SearchQueries: make([]queryJSON, len(result.SearchQueries)),
		DocumentCount: result.DocumentCount,
		ChunkCount:    result.ChunkCount,
		Quality:       string(result.Quality),
	}
	for i, q := range result.SearchQueries {
		out.SearchQueries[i] = queryJSON{Label: q.Label, Query: q.Query}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnalysisText(cmd *cobra.Command, result *domain.AnalysisResult, pageSize int) {
	if result.Input.Number != "" {
		cmd.Printf("Тендер № %s\n\n", result.Input.Number)
	}

	if pageSize > 0 {
		pages := services.PaginateSummary(result.Summary, pageSize)
		for i, page := range pages {
			if len(pages) > 1 {
				cmd.Printf("--- %d/%d ---\n", i+1, len(pages))
			}
			cmd.Println(page)
		}
	} else {
		cmd.Println(result.Summary)
	}

	cmd.Println()
	cmd.Printf("Documents: %d, chunks: %d, quality: %s\n",
		result.DocumentCount, result.ChunkCount, result.Quality)
	if result.Quality == domain.QualityPartial {
		cmd.Println("Some parts could not be analysed; the result may be incomplete.")
	}
}
