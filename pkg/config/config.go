/*
Package config manages the TOML configuration for the suppserve service.

Missing files are created with defaults; unreadable or malformed files fall
back to built-in defaults with a warning. Configuration problems never stop
the service from coming up.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/suppserve/suppserve/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Cache      CacheConfig      `toml:"cache"`
	Categories []CategoryConfig `toml:"categories"`
}

// ServerConfig has request validation and limit options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
	DefaultLimit int `toml:"default_limit"`
}

// DataConfig controls where category files live on disk.
type DataConfig struct {
	Dir         string `toml:"dir"`
	SaveOnClose bool   `toml:"save_on_close"`
}

// CacheConfig controls the per-category search result cache.
type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries"`
}

// CategoryConfig declares one autocomplete category and the result limit
// applied when a request leaves the limit unset.
type CategoryConfig struct {
	Name  string `toml:"name"`
	Limit int    `toml:"limit"`
}

// DefaultConfig returns a Config with default values: the two categories the
// service has always shipped with, each with its historical result limit.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			DefaultLimit: 10,
		},
		Data: DataConfig{
			Dir:         "data/autocomplete",
			SaveOnClose: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 4096,
		},
		Categories: []CategoryConfig{
			{Name: "products", Limit: 25},
			{Name: "brands", Limit: 15},
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Fields absent from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	if len(config.Categories) == 0 {
		config.Categories = DefaultConfig().Categories
	}
	return config, nil
}

// SaveConfig writes config to a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Category returns the config block for name, or false when the category is
// not declared.
func (c *Config) Category(name string) (CategoryConfig, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return CategoryConfig{}, false
}
