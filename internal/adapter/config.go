package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Gateway GatewayConfig `mapstructure:"gateway"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Storage StorageConfig `mapstructure:"storage"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GatewayConfig holds OMDb API configuration
type GatewayConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 for unlimited
}

// SearchConfig holds search-as-you-type configuration
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns       int    `mapstructure:"grid_columns"` // 0 fits the terminal width
	PlaceholderPoster string `mapstructure:"placeholder_poster"`
	DefaultSort       string `mapstructure:"default_sort"` // "title" or "year"
	Locale            string `mapstructure:"locale"`       // collation locale for title sort
}

// StorageConfig holds watchlist storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // empty keeps the watchlist in memory
}

// BrowserConfig holds the command used to open web pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// Environment variables override keys with this prefix, e.g. MARQUEE_GATEWAY_API_KEY
const envPrefix = "MARQUEE"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL:   "http://www.omdbapi.com/",
			APIKey:    "",
			Timeout:   10 * time.Second,
			RateLimit: 0,
		},
		Search: SearchConfig{
			Debounce: 500 * time.Millisecond,
		},
		UI: UIConfig{
			GridColumns:       0,
			PlaceholderPoster: "https://via.placeholder.com/150",
			DefaultSort:       "title",
			Locale:            "en",
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "marquee.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the directory for the watchlist and log for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// DefaultConfigFile returns the file SaveConfig writes when no path is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper returns a viper instance seeded with every key and its default,
// so environment overrides apply even to keys absent from the file
func newViper() *viper.Viper {
	v := viper.New()
	setAll(v.SetDefault, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setAll passes every field to set under its snake_case key
func setAll(set func(key string, value any), cfg *Config) {
	set("gateway.base_url", cfg.Gateway.BaseURL)
	set("gateway.api_key", cfg.Gateway.APIKey)
	set("gateway.timeout", cfg.Gateway.Timeout.String())
	set("gateway.rate_limit", cfg.Gateway.RateLimit)

	set("search.debounce", cfg.Search.Debounce.String())

	set("ui.grid_columns", cfg.UI.GridColumns)
	set("ui.placeholder_poster", cfg.UI.PlaceholderPoster)
	set("ui.default_sort", cfg.UI.DefaultSort)
	set("ui.locale", cfg.UI.Locale)

	set("storage.path", cfg.Storage.Path)

	set("browser.command", cfg.Browser.Command)
	set("browser.args", cfg.Browser.Args)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
	set("logging.format", cfg.Logging.Format)
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the user config directory and the working directory.
// A missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	var err error
	if cfg.Storage.Path, err = ExpandHome(cfg.Storage.Path); err != nil {
		return nil, err
	}
	if cfg.Logging.File, err = ExpandHome(cfg.Logging.File); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes cfg to configFile, or to DefaultConfigFile when empty.
// Returns the path written.
func SaveConfig(cfg *Config, configFile string) (string, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// A fresh instance keeps environment overrides out of the file
	v := viper.New()
	setAll(v.Set, cfg)

	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// IsConfigured returns true if an OMDb API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Gateway.APIKey) != ""
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
