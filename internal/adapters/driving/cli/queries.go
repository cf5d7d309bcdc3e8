package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var queriesJSON bool

var queriesCmd = &cobra.Command{
	Use:   "queries [summary-file]",
	Short: "Extract supplier-search queries from an analysis",
	Long: `Parses the "Поисковые запросы" section of an analysis text into
label and query pairs. Reads standard input when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQueries,
}

func init() {
	queriesCmd.Flags().BoolVar(&queriesJSON, "json", false, "output queries as JSON")
	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	text, err := readSummary(cmd, args)
	if err != nil {
		return err
	}

	queries := analysisService.ExtractQueries(text)

	if queriesJSON {
		out := make([]queryJSON, len(queries))
		for i, q := range queries {
			out[i] = queryJSON{Label: q.Label, Query: q.Query}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal queries: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(queries) == 0 {
		cmd.Println("No search queries found.")
		return nil
	}
	for i, q := range queries {
		cmd.Printf("  [%d] %s\n", i+1, q.Label)
		cmd.Printf("      %s\n", q.Query)
	}
	return nil
}

func readSummary(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading summary: %w", err)
	}
	return string(data), nil
}
