package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// API Settings
	APIBaseURL         string `yaml:"api_base_url"`
	PublicWebURL       string `yaml:"public_web_url"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`

	// Query Cache
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	ReadRetries     int `yaml:"read_retries"`

	// Category Selection
	MaxCategories int `yaml:"max_categories"`
	MinCategories int `yaml:"min_categories"`

	// Dashboard
	PageSize            int    `yaml:"page_size"`
	DefaultStatusFilter string `yaml:"default_status_filter"`

	// UI Settings
	Editor            string `yaml:"editor"`
	ColorTheme        string `yaml:"color_theme"`
	DisplayDateFormat string `yaml:"display_date_format"`
	CopyToClipboard   bool   `yaml:"copy_to_clipboard"`
	Highlight         bool   `yaml:"highlight"`

	// Drafts
	WatchDraft bool `yaml:"watch_draft"`

	// Command aliases, e.g. "mine: list --status draft"
	Aliases map[string]string `yaml:"aliases"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:          "http://localhost:8000/api/v1",
		PublicWebURL:        "",
		HTTPTimeoutSeconds:  30,
		CacheTTLSeconds:     30,
		ReadRetries:         1,
		MaxCategories:       4,
		MinCategories:       1,
		PageSize:            50,
		DefaultStatusFilter: "",
		Editor:              "",
		ColorTheme:          "auto",
		DisplayDateFormat:   "2006-01-02",
		CopyToClipboard:     true,
		Highlight:           true,
		WatchDraft:          true,
		Aliases:             make(map[string]string),
		LogLevel:            "info",
		LogFormat:           "json",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Aliases == nil {
		cfg.Aliases = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = "http://localhost:8000/api/v1"
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 30
	}
	if cfg.CacheTTLSeconds < 0 {
		cfg.CacheTTLSeconds = 0
	}
	if cfg.ReadRetries < 0 {
		cfg.ReadRetries = 0
	}
	if cfg.MaxCategories <= 0 {
		cfg.MaxCategories = 4
	}
	if cfg.MinCategories <= 0 {
		cfg.MinCategories = 1
	}
	if cfg.MinCategories > cfg.MaxCategories {
		cfg.MinCategories = cfg.MaxCategories
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !isValidLogFormat(cfg.LogFormat) {
		cfg.LogFormat = "json"
	}
	if !isValidStatusFilter(cfg.DefaultStatusFilter) {
		cfg.DefaultStatusFilter = ""
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override deployment-specific settings
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ALIB_API_BASE_URL")); v != "" {
		c.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ALIB_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HTTPTimeout returns the per-request timeout
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// CacheTTL returns how long query results stay fresh
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func isValidLogFormat(format string) bool {
	return format == "json" || format == "console"
}

func isValidStatusFilter(status string) bool {
	validStatuses := []string{"", "draft", "under_review", "approved", "deprecated"}
	for _, valid := range validStatuses {
		if status == valid {
			return true
		}
	}
	return false
}
