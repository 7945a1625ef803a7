package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("catalog.path", "data/gifts.csv"))

	// A fresh store must see the value without an explicit Save.
	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "data/gifts.csv", reopened.GetString("catalog.path"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("catalog.top_k", int64(6)))
	require.NoError(t, store.Set("verbose", true))
	require.NoError(t, store.Set("llm.provider", "mistral"))

	assert.Equal(t, 6, store.GetInt("catalog.top_k"))
	assert.True(t, store.GetBool("verbose"))
	assert.Equal(t, "mistral", store.GetString("llm.provider"))

	// Missing or mistyped keys degrade to zero values.
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("llm.provider"))
	assert.Equal(t, "", store.GetString("catalog.top_k"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[llm]\nprovider = \"openai\"\nmodel = \"gpt-4o-mini\"\n\n[catalog]\ntop_k = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
	assert.Equal(t, 4, store.GetInt("catalog.top_k"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("llm.provider", "mistral"))
	require.NoError(t, store.Set("llm.model", "mistral-small-latest"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.NotContains(t, string(raw), "'llm.provider'")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = = toml"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
