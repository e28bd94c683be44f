package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVault_StorageFile(t *testing.T) {
	v := NewAt("/test/alib", "/test/config.yaml")

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"token key", "access_token", "/test/alib/storage/access_token.json"},
		{"draft key", "create_asset_draft", "/test/alib/storage/create_asset_draft.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.StorageFile(tt.key)
			if result != filepath.FromSlash(tt.expected) {
				t.Errorf("StorageFile(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestVault_GetCachePath(t *testing.T) {
	v := &Vault{
		CachePath: "/test/alib/cache",
	}

	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"html chart", "stats.html", "/test/alib/cache/stats.html"},
		{"json file", "taxonomy.json", "/test/alib/cache/taxonomy.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.GetCachePath(tt.filename)
			if result != filepath.FromSlash(tt.expected) {
				t.Errorf("GetCachePath(%q) = %q, want %q", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestVault_LogFile(t *testing.T) {
	v := NewAt("/test/alib", "")
	want := filepath.Join("/test/alib", "logs", "alib.log")
	if got := v.LogFile(); got != want {
		t.Errorf("LogFile() = %q, want %q", got, want)
	}
}

func TestVault_InitializeAndExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "alib")
	v := NewAt(root, filepath.Join(root, "config.yaml"))

	if v.Exists() {
		t.Fatal("vault should not exist before Initialize")
	}

	if err := v.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if !v.Exists() {
		t.Fatal("vault should exist after Initialize")
	}

	for _, dir := range []string{v.StoragePath, v.CachePath, v.LogsPath} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}
}

func TestVault_CleanCache(t *testing.T) {
	root := t.TempDir()
	v := NewAt(root, "")
	if err := v.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}

	if err := os.WriteFile(v.GetCachePath("stats.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("failed to write cache file: %v", err)
	}

	if err := os.MkdirAll(v.GetCachePath("sections"), 0700); err != nil {
		t.Fatalf("failed to create scratch dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(v.GetCachePath("sections"), "overview.yaml"), []byte("summary: x\n"), 0644); err != nil {
		t.Fatalf("failed to write scratch file: %v", err)
	}

	files, size, err := v.CacheUsage()
	if err != nil {
		t.Fatalf("CacheUsage() error: %v", err)
	}
	if files != 2 || size != int64(len("<html></html>")+len("summary: x\n")) {
		t.Errorf("CacheUsage() = %d files, %d bytes", files, size)
	}

	removed, err := v.CleanCache()
	if err != nil {
		t.Fatalf("CleanCache() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("CleanCache() removed %d entries, want 2", removed)
	}

	entries, err := os.ReadDir(v.CachePath)
	if err != nil {
		t.Fatalf("failed to read cache dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache, found %d entries", len(entries))
	}
}

func TestVault_MissingCache(t *testing.T) {
	v := NewAt(filepath.Join(t.TempDir(), "absent"), "")

	removed, err := v.CleanCache()
	if err != nil || removed != 0 {
		t.Errorf("CleanCache() on missing dir = %d, %v", removed, err)
	}
	files, size, err := v.CacheUsage()
	if err != nil || files != 0 || size != 0 {
		t.Errorf("CacheUsage() on missing dir = %d, %d, %v", files, size, err)
	}
}

func TestNew_HomeOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	v, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if v.RootPath != home {
		t.Errorf("RootPath = %q, want %q", v.RootPath, home)
	}
	if v.ConfigPath != filepath.Join(home, "config.yaml") {
		t.Errorf("ConfigPath = %q", v.ConfigPath)
	}
}

func TestNew_RespectsXDG(t *testing.T) {
	t.Setenv(HomeEnv, "")
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)

	v, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if v.RootPath != filepath.Join(dataHome, "alib") {
		t.Errorf("RootPath = %q, want %q", v.RootPath, filepath.Join(dataHome, "alib"))
	}
	if v.ConfigPath != filepath.Join(configHome, "alib", "config.yaml") {
		t.Errorf("ConfigPath = %q", v.ConfigPath)
	}
}
