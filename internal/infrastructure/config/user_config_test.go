package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	// Arrange
	handler, err := NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	// Act
	require.NoError(t, handler.SetDefaultCatalog("catalogs/anno1800.yaml"))
	require.NoError(t, handler.SetOptimized(true))
	loaded, err := handler.Load()

	// Assert
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(loaded.DefaultCatalogPath))
	assert.Equal(t, "anno1800.yaml", filepath.Base(loaded.DefaultCatalogPath))
	require.NotNil(t, loaded.Optimized)
	assert.True(t, *loaded.Optimized)
}

func TestUserConfigHandler_LoadMissingFile(t *testing.T) {
	handler, err := NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested"))
	require.NoError(t, err)

	cfg, err := handler.Load()

	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)
	assert.Equal(t, "preferences.json", filepath.Base(handler.GetConfigPath()))
}

func TestUserConfigHandler_LoadCorruptFile(t *testing.T) {
	handler, err := NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(handler.GetConfigPath(), []byte("{not json"), 0644))

	_, err = handler.Load()

	assert.ErrorContains(t, err, "failed to parse user config")
}

func TestUserConfigHandler_Clear(t *testing.T) {
	handler, err := NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, handler.SetOptimized(false))

	require.NoError(t, handler.Clear())
	cfg, err := handler.Load()

	require.NoError(t, err)
	assert.Nil(t, cfg.Optimized)
	assert.Empty(t, cfg.DefaultCatalogPath)
}

func TestUserConfig_Apply(t *testing.T) {
	optimized := true

	t.Run("catalog path switches demo to file", func(t *testing.T) {
		cfg := DefaultConfig()
		(&UserConfig{DefaultCatalogPath: "/home/anno/catalog.yaml", Optimized: &optimized}).Apply(cfg)

		assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
		assert.Equal(t, "/home/anno/catalog.yaml", cfg.Catalog.Path)
		assert.True(t, cfg.Calculation.Optimized)
	})

	t.Run("configured path wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Catalog.Source = CatalogSourceDatabase
		cfg.Catalog.Path = "/etc/annocalc/catalog.yaml"

		(&UserConfig{DefaultCatalogPath: "/home/anno/catalog.yaml"}).Apply(cfg)

		assert.Equal(t, CatalogSourceDatabase, cfg.Catalog.Source)
		assert.Equal(t, "/etc/annocalc/catalog.yaml", cfg.Catalog.Path)
		assert.False(t, cfg.Calculation.Optimized)
	})

	t.Run("nil preferences", func(t *testing.T) {
		cfg := DefaultConfig()
		var prefs *UserConfig

		assert.NotPanics(t, func() { prefs.Apply(cfg) })
		assert.Equal(t, DefaultConfig(), cfg)
	})
}
