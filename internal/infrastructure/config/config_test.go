package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
catalog:
  source: file
  path: /srv/anno/catalog.yaml
database:
  type: postgres
  host: db.internal
  pool:
    max_lifetime: 10m
logging:
  level: debug
  format: json
metrics:
  enabled: true
  textfile_path: /var/lib/node_exporter/annocalc.prom
calculation:
  optimized: true
`)

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "/srv/anno/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "annocalc", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "annocalc", cfg.Metrics.Namespace)
	assert.True(t, cfg.Calculation.Optimized)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "logging:\n  level: warn\n")
	t.Setenv("ANNO_LOGGING_LEVEL", "error")
	t.Setenv("ANNO_CALCULATION_OPTIMIZED", "true")
	t.Setenv("ANNO_METRICS_NAMESPACE", "anno1800")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.True(t, cfg.Calculation.Optimized)
	assert.Equal(t, "anno1800", cfg.Metrics.Namespace)
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "database:\n  type: postgres\n")
	t.Setenv("DATABASE_URL", "postgresql://anno:secret@db:5432/catalog")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "postgresql://anno:secret@db:5432/catalog", cfg.Database.URL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("file source without path", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, "catalog:\n  source: file\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Config.Catalog.Path")
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, "logging:\n  level: chatty\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Config.Logging.Level")
	})
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDefaultConfig(t *testing.T) {
	// Act
	cfg := DefaultConfig()

	// Assert
	assert.Equal(t, CatalogSourceDemo, cfg.Catalog.Source)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "annocalc.db", cfg.Database.Path)
	assert.Empty(t, cfg.Database.Host, "postgres defaults only apply to postgres")
	assert.Equal(t, 10, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 2, cfg.Database.Pool.MaxIdle)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "annocalc", cfg.Metrics.Namespace)
	assert.NoError(t, ValidateConfig(cfg))
}
