package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/prompts"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptExt is the file extension of prompt templates on disk.
const PromptExt = ".tmpl"

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to the
// built-in templates.
//
// The store uses lazy initialisation: files are only created when first
// accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.tendera/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and writes the defaults.
// Falls back to the built-in template if the file is missing or blank.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := prompts.Default(name); ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil || prompt == "" {
		if defaultPrompt, ok := prompts.Default(name); ok {
			return defaultPrompt, nil
		}
		if err == nil {
			err = fmt.Errorf("empty template")
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Another goroutine may have loaded it first; keep theirs.
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// Path returns the file path of the named prompt.
func (s *PromptStore) Path(name string) string {
	return filepath.Join(s.promptDir, name+PromptExt)
}

// EnsureDir creates the prompt directory and default files if needed.
// Load does this lazily; the watcher needs the directory up front.
func (s *PromptStore) EnsureDir() error {
	s.initOnce.Do(s.initialise)
	return s.initErr
}

// initialise creates the prompt directory and default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	defaults, err := prompts.Defaults()
	if err != nil {
		s.initErr = err
		return
	}
	for name, content := range defaults {
		path := s.Path(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Tendera Prompts

This directory contains the prompts used to analyse tender documents.

## Files

- ` + "`system.tmpl`" + ` - System message sent with every request
- ` + "`analyse_single.tmpl`" + ` - Analysis of documents that fit in one request
- ` + "`analyse_chunk.tmpl`" + ` - Analysis of one part of a large document set
- ` + "`reduce.tmpl`" + ` - Combines the per-part answers into the final result

## Customisation

Edit any file to change the analysis. Changes are picked up automatically
while the MCP server runs, and on the next command otherwise. Delete a file
to restore its default on the next run.

## Template Fields

Templates use Go text/template syntax:
- ` + "`{{.Text}}`" + ` - document text (or the joined part answers for reduce)
- ` + "`{{.Part}}`" + `, ` + "`{{.Total}}`" + ` - part number and number of parts
- ` + "`{{.Tender.Number}}`" + `, ` + "`{{.Tender.Customer}}`" + `, ` + "`{{.Tender.Subject}}`" + `,
  ` + "`{{.Tender.Price}}`" + `, ` + "`{{.Tender.SubmissionDeadline}}`" + `,
  ` + "`{{.Tender.DeliveryPlace}}`" + ` - tender metadata
- ` + "`{{.Tender.Field .Tender.Customer}}`" + ` - a field, or "Не указано" when empty

Keep the "Поисковые запросы:" section in the answer format, it is parsed
into supplier search queries. A template that fails to parse falls back to
the built-in version.
`
	return os.WriteFile(path, []byte(content), 0600)
}
