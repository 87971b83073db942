package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds per-user preferences stored in ~/.annocalc/preferences.json.
// Values here fill in CLI flags the user did not pass.
type UserConfig struct {
	// YAML catalog used when neither --catalog nor catalog.path is set
	DefaultCatalogPath string `json:"default_catalog_path,omitempty"`

	// Optimized overrides calculation.optimized when set
	Optimized *bool `json:"optimized,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for the preferences file in the
// user's home directory
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".annocalc"))
}

// NewUserConfigHandlerAt creates a handler for the preferences file in dir
func NewUserConfigHandlerAt(dir string) (*UserConfigHandler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(dir, "preferences.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &cfg, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultCatalog stores the catalog file used by default
func (h *UserConfigHandler) SetDefaultCatalog(path string) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	cfg.DefaultCatalogPath = abs
	return h.Save(cfg)
}

// SetOptimized stores the preferred optimized flag
func (h *UserConfigHandler) SetOptimized(optimized bool) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}

	cfg.Optimized = &optimized
	return h.Save(cfg)
}

// Clear removes every stored preference
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}

// Apply overlays the user preferences onto cfg. A stored catalog path
// switches a demo source to file.
func (u *UserConfig) Apply(cfg *Config) {
	if u == nil || cfg == nil {
		return
	}
	if u.DefaultCatalogPath != "" && cfg.Catalog.Path == "" {
		cfg.Catalog.Path = u.DefaultCatalogPath
		if cfg.Catalog.Source == CatalogSourceDemo {
			cfg.Catalog.Source = CatalogSourceFile
		}
	}
	if u.Optimized != nil {
		cfg.Calculation.Optimized = *u.Optimized
	}
}
