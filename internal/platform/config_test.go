package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Missing File Is Zero Config", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, FileConfig{}, cfg)
		assert.Empty(t, cfg.Options())
	})

	t.Run("Reads All Keys", func(t *testing.T) {
		dir := t.TempDir()
		yml := "adapter: sqlite\nslot: drafts\nread_only: true\nrequire_content: true\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yml), 0644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, FileConfig{Adapter: "sqlite", Slot: "drafts", ReadOnly: true, RequireContent: true}, cfg)

		o := defaultOptions()
		for _, opt := range cfg.Options() {
			opt(o)
		}
		assert.Equal(t, AdapterSQLite, o.adapter)
		assert.Equal(t, "drafts", o.slot)
		assert.True(t, o.flag("read_only"))
	})

	t.Run("Rejects Unknown Adapter", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("adapter: s3\n"), 0644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("Rejects Malformed YAML", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("adapter: [\n"), 0644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("Save Then Load", func(t *testing.T) {
		dir := t.TempDir()
		want := FileConfig{Adapter: AdapterBolt, Slot: "myData"}

		require.NoError(t, SaveConfig(dir, want))
		got, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
