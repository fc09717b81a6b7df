package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "lumina.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[application]
name = "demo"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Application.Name)
	// Unset batching values fall back to defaults.
	assert.Equal(t, Default().Batching.VertexLimit, cfg.Batching.VertexLimit)
	assert.Equal(t, Default().Batching.IndexLimit, cfg.Batching.IndexLimit)
}

func TestLoadOverridesBatching(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[batching]
vertex_limit = 128
index_limit = 256
max_batch_count = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Batching.VertexLimit)
	assert.Equal(t, 256, cfg.Batching.IndexLimit)
	assert.Equal(t, 2, cfg.Batching.MaxBatchCount)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[batching]
vertex_limit = -1
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[batching]
vertex_limit = 100
index_limit = 100
max_batch_count = 1
`)

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	writeConfig(t, dir, `
[batching]
vertex_limit = 200
index_limit = 100
max_batch_count = 1
`)

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 200, cfg.Batching.VertexLimit)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
