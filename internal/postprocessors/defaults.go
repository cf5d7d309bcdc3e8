package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/tendera/internal/core/domain"
	"github.com/custodia-labs/tendera/internal/core/ports/driven"
	"github.com/custodia-labs/tendera/internal/postprocessors/compressor"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("compressor", buildCompressor)
}

// buildCompressor creates a compressor from generic config.
// Supported config keys:
//   - target_length (int): Soft cap on output characters (default: 15000)
//   - max_line_length (int): Longer lines are dropped (default: 120)
//   - min_lines (int): Fallback threshold (default: 30)
//   - truncate_threshold, head, tail (int): Head+tail truncation (default: 20000/10000/5000);
//     head+tail above the threshold is rejected with domain.ErrInvalidInput
//   - keywords ([]string): Domain keyword set
func buildCompressor(cfg map[string]any) (driven.TextProcessor, error) {
	var opts []compressor.Option

	if cfg != nil {
		if n := getIntFromConfig(cfg, "target_length"); n > 0 {
			opts = append(opts, compressor.WithTargetLength(n))
		}
		if n := getIntFromConfig(cfg, "max_line_length"); n > 0 {
			opts = append(opts, compressor.WithMaxLineLength(n))
		}
		if _, ok := cfg["min_lines"]; ok {
			opts = append(opts, compressor.WithMinLines(getIntFromConfig(cfg, "min_lines")))
		}
		threshold := getIntFromConfig(cfg, "truncate_threshold")
		head := getIntFromConfig(cfg, "head")
		tail := getIntFromConfig(cfg, "tail")
		if threshold > 0 {
			if head < 0 || tail < 0 || head+tail > threshold {
				return nil, fmt.Errorf("compressor: head (%d) + tail (%d) must fit within truncate_threshold (%d): %w",
					head, tail, threshold, domain.ErrInvalidInput)
			}
			opts = append(opts, compressor.WithTruncation(threshold, head, tail))
		}
		if kw := getStringSliceFromConfig(cfg, "keywords"); len(kw) > 0 {
			opts = append(opts, compressor.WithKeywords(kw))
		}
	}

	return compressor.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// getStringSliceFromConfig extracts a string list from []string or []any.
func getStringSliceFromConfig(cfg map[string]any, key string) []string {
	switch v := cfg[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
