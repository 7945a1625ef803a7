package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/kadolab/kado-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

const configFileName = "config.toml"

// ConfigStore persists configuration as a TOML file. Keys use dot notation
// ("llm.provider"); on disk they become nested TOML tables so the file stays
// hand-editable.
type ConfigStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// NewConfigStore opens or creates the config file. An empty configDir means
// ~/.kado.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".kado")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	store := &ConfigStore{
		path:   filepath.Join(configDir, configFileName),
		values: map[string]any{},
	}
	if err := store.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return store, nil
}

// Load re-reads the config file, replacing the in-memory values. A missing
// file loads as empty.
func (c *ConfigStore) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.values = map[string]any{}
			return nil
		}
		return err
	}

	var tree map[string]any
	if err := toml.Unmarshal(raw, &tree); err != nil {
		return err
	}

	c.values = map[string]any{}
	flatten(tree, "", c.values)
	return nil
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
// TOML decodes integers as int64.
func (c *ConfigStore) GetInt(key string) int {
	value, ok := c.Get(key)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int64:
		return int(v)
	case int:
		return v
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

// Set stores a value and writes the file immediately.
func (c *ConfigStore) Set(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return c.write()
}

// Save writes the current values to disk.
func (c *ConfigStore) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write()
}

// Path returns the config file location.
func (c *ConfigStore) Path() string {
	return c.path
}

// write marshals the values as nested tables. Caller holds the lock.
// API keys live in this file, hence the restrictive mode.
func (c *ConfigStore) write() error {
	raw, err := toml.Marshal(unflatten(c.values))
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0600)
}

// flatten walks a decoded TOML tree and records leaves under dot-notation
// keys in out.
func flatten(tree map[string]any, prefix string, out map[string]any) {
	for key, value := range tree {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			flatten(sub, full, out)
			continue
		}
		out[full] = value
	}
}

// unflatten rebuilds the nested tree from dot-notation keys.
func unflatten(values map[string]any) map[string]any {
	tree := map[string]any{}
	for key, value := range values {
		parts := strings.Split(key, ".")
		node := tree
		for _, part := range parts[:len(parts)-1] {
			sub, ok := node[part].(map[string]any)
			if !ok {
				sub = map[string]any{}
				node[part] = sub
			}
			node = sub
		}
		node[parts[len(parts)-1]] = value
	}
	return tree
}
