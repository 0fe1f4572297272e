package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultSourceURL is where the set files are downloaded from
const DefaultSourceURL = "https://raw.githubusercontent.com/erlloyd/star-wars-unlimited-json/main/sets"

// DefaultSets lists the set files downloaded by default, in catalog order
var DefaultSets = []string{
	"Spark of Rebellion",
	"Shadows of the Galaxy",
	"Twilight of the Republic",
	"Jump to Lightspeed",
}

// DeckBuilder is a third-party deck-building site
type DeckBuilder struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// Config represents the application configuration
type Config struct {
	DataDir      string        `toml:"data_dir"`
	SourceURL    string        `toml:"source_url"`
	Sets         []string      `toml:"sets"`
	DefaultMode  string        `toml:"default_mode"`
	ResultLimit  int           `toml:"result_limit"`
	LogLevel     string        `toml:"log_level"`
	LogFormat    string        `toml:"log_format"`
	DeckBuilders []DeckBuilder `toml:"deckbuilders"`
}

// configFileOverride replaces the XDG config path when set
var configFileOverride string

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		SourceURL:   DefaultSourceURL,
		Sets:        append([]string(nil), DefaultSets...),
		DefaultMode: "relevance",
		LogLevel:    "warn",
		LogFormat:   "console",
		DeckBuilders: []DeckBuilder{
			{Name: "SWUDB", URL: "https://swudb.com/decks/"},
			{Name: "Karabast", URL: "https://karabast.net/"},
			{Name: "SW-Unlimited DB", URL: "https://sw-unlimited-db.com/decks/"},
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// SetConfigFilePath points the config at an explicit file; empty restores the default
func SetConfigFilePath(path string) {
	configFileOverride = path
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if configFileOverride != "" {
		return configFileOverride
	}
	return filepath.Join(GetXDGConfigHome(), "holocron", "config.toml")
}

// GetCacheDir returns the directory for downloaded art and generated ANSI
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "holocron")
}

// DataPath returns the directory holding the card catalog
func (c *Config) DataPath() string {
	if c != nil && c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(GetXDGDataHome(), "holocron")
}

// CatalogPath returns the path to cards.json
func (c *Config) CatalogPath() string {
	return filepath.Join(c.DataPath(), "cards.json")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	// Keys present but empty fall back to defaults
	if config.SourceURL == "" {
		config.SourceURL = DefaultSourceURL
	}
	if len(config.Sets) == 0 {
		config.Sets = append([]string(nil), DefaultSets...)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the config file, creating its directory
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
