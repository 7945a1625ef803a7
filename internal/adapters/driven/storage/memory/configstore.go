// Package memory provides in-memory implementations of driven port
// interfaces, used for testing and for running without persistence.
package memory

import (
	"sync"

	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in a map. Values vanish with the process;
// Save and Load are no-ops.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: map[string]any{}}
}

// Seed pre-populates the store, a convenience for test setup.
func (c *ConfigStore) Seed(values map[string]any) *ConfigStore {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, value := range values {
		c.values[key] = value
	}
	return c
}

// Get retrieves a value and whether the key exists.
func (c *ConfigStore) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

// GetString retrieves a string value, or "" when absent or mistyped.
func (c *ConfigStore) GetString(key string) string {
	if value, ok := c.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an integer value, or 0 when absent or mistyped.
func (c *ConfigStore) GetInt(key string) int {
	value, ok := c.Get(key)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// GetBool retrieves a boolean value, or false when absent or mistyped.
func (c *ConfigStore) GetBool(key string) bool {
	if value, ok := c.Get(key); ok {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return false
}

// Set stores a value.
func (c *ConfigStore) Set(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Save is a no-op.
func (c *ConfigStore) Save() error { return nil }

// Load is a no-op.
func (c *ConfigStore) Load() error { return nil }

// Path identifies the store in diagnostics.
func (c *ConfigStore) Path() string { return ":memory:" }
