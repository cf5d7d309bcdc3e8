// Package prompts holds the built-in analysis prompt templates.
//
// Templates are Go text/template sources. User-edited copies in the prompt
// directory take precedence; these are the fallback and the initial content.
package prompts

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Default returns the built-in template for name.
func Default(name string) (string, bool) {
	data, err := templates.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Defaults returns every built-in template keyed by prompt name.
func Defaults() (map[string]string, error) {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded prompts: %w", err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".tmpl")
		if text, ok := Default(name); ok {
			out[name] = text
		}
	}
	return out, nil
}
