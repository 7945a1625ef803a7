package driven

// ConfigStore reads and writes application configuration. Keys use dot
// notation ("llm.provider"); typed getters degrade to zero values when a
// key is absent or holds a different type.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns a string value, or "".
	GetString(key string) string

	// GetInt returns an integer value, or 0.
	GetInt(key string) int

	// GetBool returns a boolean value, or false.
	GetBool(key string) bool

	// Set stores a value. Persistent implementations write immediately.
	Set(key string, value any) error

	// Save flushes the current values to backing storage.
	Save() error

	// Load replaces the current values from backing storage.
	Load() error

	// Path identifies the backing location for diagnostics.
	Path() string
}
