package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ALIB_API_BASE_URL", "")
	t.Setenv("ALIB_LOG_LEVEL", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.MaxCategories != 4 {
		t.Errorf("expected default MaxCategories=4, got %d", cfg.MaxCategories)
	}

	if cfg.MinCategories != 1 {
		t.Errorf("expected default MinCategories=1, got %d", cfg.MinCategories)
	}

	if cfg.ReadRetries != 1 {
		t.Errorf("expected default ReadRetries=1, got %d", cfg.ReadRetries)
	}

	if cfg.HTTPTimeout() != 30*time.Second {
		t.Errorf("expected default HTTPTimeout=30s, got %s", cfg.HTTPTimeout())
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat='json', got %q", cfg.LogFormat)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("expected default APIBaseURL, got %q", cfg.APIBaseURL)
	}
}

func TestSave_And_Load(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://catalog.example.org/api"
	cfg.Editor = "vim"
	cfg.PageSize = 25
	cfg.MaxCategories = 3
	cfg.Aliases["mine"] = "list --status draft"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.APIBaseURL != cfg.APIBaseURL {
		t.Errorf("APIBaseURL: expected %q, got %q", cfg.APIBaseURL, loaded.APIBaseURL)
	}
	if loaded.Editor != "vim" {
		t.Errorf("Editor: expected 'vim', got %q", loaded.Editor)
	}
	if loaded.PageSize != 25 {
		t.Errorf("PageSize: expected 25, got %d", loaded.PageSize)
	}
	if loaded.MaxCategories != 3 {
		t.Errorf("MaxCategories: expected 3, got %d", loaded.MaxCategories)
	}
	if loaded.Aliases["mine"] != "list --status draft" {
		t.Errorf("Aliases: expected mine alias, got %v", loaded.Aliases)
	}
}

func TestLoad_AliasesNeverNil(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("page_size: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Aliases == nil {
		t.Fatal("Aliases should be initialized")
	}
	cfg.Aliases["x"] = "list"
}

func TestLoad_AppliesDefaults(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `api_base_url: ""
http_timeout_seconds: 0
max_categories: -1
page_size: 0
log_format: xml
default_status_filter: archived
editor: nvim
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("expected default APIBaseURL, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Errorf("expected HTTPTimeoutSeconds=30, got %d", cfg.HTTPTimeoutSeconds)
	}
	if cfg.MaxCategories != 4 {
		t.Errorf("expected MaxCategories=4, got %d", cfg.MaxCategories)
	}
	if cfg.PageSize != 50 {
		t.Errorf("expected PageSize=50, got %d", cfg.PageSize)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected LogFormat='json', got %q", cfg.LogFormat)
	}
	if cfg.DefaultStatusFilter != "" {
		t.Errorf("expected invalid status filter to reset, got %q", cfg.DefaultStatusFilter)
	}
	if cfg.Editor != "nvim" {
		t.Errorf("expected Editor='nvim', got %q", cfg.Editor)
	}
}

func TestLoad_MinCategoriesClamped(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(configPath, []byte("max_categories: 2\nmin_categories: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.MinCategories != 2 {
		t.Errorf("expected MinCategories clamped to 2, got %d", cfg.MinCategories)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("api_base_url: https://file.example/api\n"), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	t.Setenv("ALIB_API_BASE_URL", "https://env.example/api/")
	t.Setenv("ALIB_LOG_LEVEL", "debug")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.APIBaseURL != "https://env.example/api" {
		t.Errorf("expected env APIBaseURL without trailing slash, got %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel='debug', got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `api_base_url: http://x
editor: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	if err := DefaultConfig().Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}
