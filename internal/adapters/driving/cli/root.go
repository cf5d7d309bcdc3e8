// Package cli implements the tendera command line with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/core/ports/driving"
	"github.com/custodia-labs/tendera/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// Services wired by Execute (or directly by tests).
var (
	settingsService driving.SettingsService
	analysisService driving.AnalysisService
	promptStore     driven.PromptStore
	watchPrompts    WatchFunc
	closeServices   func() error
)

// Options carries the global flags to a Bootstrap.
type Options struct {
	// ConfigDir overrides ~/.tendera.
	ConfigDir string

	// NoConfig keeps settings in memory: nothing under ConfigDir is read
	// or written, and the embedded prompts are used.
	NoConfig bool

	// EnvFile is loaded before services are built. Empty means ".env" if present.
	EnvFile string

	// Verbose enables debug logging.
	Verbose bool
}

// Services is the set of dependencies a Bootstrap builds.
type Services struct {
	Settings driving.SettingsService
	Analysis driving.AnalysisService

	// Prompts is the active prompt store. May be nil.
	Prompts driven.PromptStore

	// WatchPrompts starts hot reload of prompt templates. May be nil.
	WatchPrompts WatchFunc

	// Close releases held resources. May be nil.
	Close func() error
}

// WatchFunc starts watching prompt templates until the returned stop is called.
type WatchFunc func(ctx context.Context) (stop func(), err error)

// Bootstrap builds services once global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var (
	bootstrap Bootstrap
	rootOpts  Options
	logJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "tendera",
	Short: "Analyse public tender documentation with an LLM",
	Long: `Tendera extracts text from downloaded tender documents (PDF, DOCX, DOC,
XLSX, XLS, ZIP, RAR, images), compresses it to the procurement-relevant
parts and asks a language model for a summary, the risks, a participation
recommendation and supplier-search queries for every line item.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "log pipeline details to stderr")
	flags.BoolVar(&logJSON, "log-json", false, "write logs as JSON lines")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.tendera)")
	flags.BoolVar(&rootOpts.NoConfig, "no-config", false, "ignore the configuration directory; use environment and defaults")
	flags.StringVar(&rootOpts.EnvFile, "env-file", "", "environment file to load (default .env if present)")
}

// Execute runs the root command with the given build version and bootstrap.
func Execute(ctx context.Context, buildVersion string, b Bootstrap) error {
	if buildVersion != "" {
		version = buildVersion
	}
	bootstrap = b
	defer shutdown()

	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)
	logger.SetJSON(logJSON)

	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	if err := loadEnv(rootOpts.EnvFile); err != nil {
		return err
	}
	if bootstrap == nil || settingsService != nil {
		return nil
	}

	svc, err := bootstrap(rootOpts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	settingsService = svc.Settings
	analysisService = svc.Analysis
	promptStore = svc.Prompts
	watchPrompts = svc.WatchPrompts
	closeServices = svc.Close
	return nil
}

// loadEnv loads path, or ./.env when path is empty and the file exists.
// Variables already set in the environment win.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func shutdown() {
	if closeServices == nil {
		return
	}
	if err := closeServices(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	closeServices = nil
}
