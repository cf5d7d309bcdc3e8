package driven

// ConfigStore is a flat key/value view over tendera's settings file.
//
// Keys use dot notation ("llm.provider", "analysis.chunk_limit"). Stores
// backed by a nested format such as TOML flatten tables on load and nest
// them again on save.
type ConfigStore interface {
	// Get returns the raw value for key and whether it was present.
	Get(key string) (any, bool)

	// GetString returns "" for missing or non-string values.
	GetString(key string) string

	// GetInt returns 0 for missing values. Whole float64 values are
	// accepted since decoders may report numbers that way.
	GetInt(key string) int

	GetBool(key string) bool

	// GetStringSlice returns nil when the key is missing or holds
	// anything other than a list of strings.
	GetStringSlice(key string) []string

	// Set stores value under key and persists it. On a persistence
	// failure the previous value is restored.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the backing file, or "" for stores that are not persisted.
	Path() string
}
