// Command tendera analyses public tender documentation with an LLM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/tendera/internal/adapters/driven/ai"
	"github.com/custodia-labs/tendera/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tendera/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tendera/internal/adapters/driving/cli"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/core/services"
	"github.com/custodia-labs/tendera/internal/extractors"
	"github.com/custodia-labs/tendera/internal/logger"
	"github.com/custodia-labs/tendera/internal/postprocessors"
	"github.com/custodia-labs/tendera/internal/postprocessors/chunker"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, bootstrap); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires adapters into services once global flags are known.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := openConfigStore(opts)
	if err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	// An unconfigured LLM leaves the service nil; analysis then reports
	// ErrLLMUnavailable while settings commands keep working.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable: %v", err)
		llm = nil
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.Build(registry, settings.Analysis.PipelineConfig())
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	analysisService := services.NewAnalysisService(
		extractors.NewDefaultRegistry(settings.Analysis),
		pipeline,
		chunker.New(chunker.WithLimit(settings.Analysis.ChunkLimit)),
		llm,
		settings.LLM,
	)

	svc := &cli.Services{
		Settings: settingsService,
		Analysis: analysisService,
		Close: func() error {
			if llm != nil {
				return llm.Close()
			}
			return nil
		},
	}

	// Without a config directory the embedded prompt templates are used.
	if opts.NoConfig {
		return svc, nil
	}

	promptDir := ""
	if opts.ConfigDir != "" {
		promptDir = filepath.Join(opts.ConfigDir, "prompts")
	}
	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, fmt.Errorf("opening prompts: %w", err)
	}
	analysisService.SetPromptStore(promptStore)
	svc.Prompts = promptStore
	svc.WatchPrompts = func(ctx context.Context) (func(), error) {
		return watchPrompts(ctx, promptStore)
	}
	return svc, nil
}

// openConfigStore returns the TOML store, or an empty in-memory store when
// the run must leave the config directory alone. Settings then come from
// the environment and defaults only.
func openConfigStore(opts cli.Options) (driven.ConfigStore, error) {
	if opts.NoConfig {
		logger.Debug("config: in memory (--no-config)")
		return memory.NewConfigStore(), nil
	}
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())
	return configStore, nil
}

// watchPrompts reloads promptStore whenever its templates change on disk.
func watchPrompts(ctx context.Context, store *file.PromptStore) (func(), error) {
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}
	watcher, err := file.NewPromptWatcher(store, store.Dir())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = watcher.Run(ctx) //nolint:errcheck // ends with ctx
	}()

	return func() {
		cancel()
		watcher.Close()
		<-done
	}, nil
}
