package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds everything the CLI and API server need: where the property
// book API lives, how to authenticate against it, and how the search
// pipeline should behave.
type Config struct {
	ServerURL  string       `toml:"server_url"`
	Token      string       `toml:"token"`
	StorageDir string       `toml:"storage_dir"`
	Search     SearchConfig `toml:"search"`
}

// SearchConfig tunes the aggregator and debouncer.
type SearchConfig struct {
	// Debounce is the quiet window before a pending query fires.
	Debounce Duration `toml:"debounce"`
	// MinQueryLength is the minimum trimmed query length that triggers a search.
	MinQueryLength int `toml:"min_query_length"`
	// CategoryTimeout bounds each category fetch so one stalled category
	// cannot delay the merged result indefinitely.
	CategoryTimeout Duration `toml:"category_timeout"`
	// CatalogLimit is the maximum number of reference catalog hits requested
	// from the server per search.
	CatalogLimit int `toml:"catalog_limit"`
	// Categories limits searching to the named categories. Empty means all.
	Categories []string `toml:"categories,omitempty"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	return &Config{
		ServerURL:  "http://localhost:8080",
		StorageDir: storageDir,
		Search:     defaultSearchConfig(),
	}, nil
}

func defaultSearchConfig() SearchConfig {
	return SearchConfig{
		Debounce:        Duration{300 * time.Millisecond},
		MinQueryLength:  2,
		CategoryTimeout: Duration{10 * time.Second},
		CatalogLimit:    25,
	}
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.ServerURL == "" {
		config.ServerURL = "http://localhost:8080"
	}

	if config.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		config.StorageDir = storageDir
	}

	defaults := defaultSearchConfig()
	if config.Search.Debounce.Duration == 0 {
		config.Search.Debounce = defaults.Debounce
	}
	if config.Search.MinQueryLength == 0 {
		config.Search.MinQueryLength = defaults.MinQueryLength
	}
	if config.Search.CategoryTimeout.Duration == 0 {
		config.Search.CategoryTimeout = defaults.CategoryTimeout
	}
	if config.Search.CatalogLimit == 0 {
		config.Search.CatalogLimit = defaults.CatalogLimit
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	storageDir := c.StorageDir
	if storageDir == "" {
		var err error
		storageDir, err = GetDefaultStorageDir()
		if err != nil {
			return "", fmt.Errorf("getting default storage directory: %w", err)
		}
	}

	// Replace the placeholder storage_dir with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/hrx", storageDir, 1)
	return template, nil
}

// RecentDBPath returns the path of the recent-searches database inside the
// configured storage directory.
func (c *Config) RecentDBPath() string {
	return filepath.Join(c.StorageDir, "recent.db")
}

// GetDefaultStorageDir returns the default storage directory for databases
func GetDefaultStorageDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	hrxDir := filepath.Join(dataDir, "hrx")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(hrxDir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", hrxDir, err)
	}

	return hrxDir, nil
}

// GetConfigDir returns the configuration directory for hrx
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	hrxConfigDir := filepath.Join(configDir, "hrx")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(hrxConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", hrxConfigDir, err)
	}

	return hrxConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
