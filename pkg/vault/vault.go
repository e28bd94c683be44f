package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const appName = "alib"

// HomeEnv overrides both the state directory and the config location
const HomeEnv = "ALIB_HOME"

// Vault is the local state directory: persistent storage (token, create
// draft), disposable cache (section scratch files, chart pages) and logs.
type Vault struct {
	RootPath    string
	StoragePath string
	CachePath   string
	LogsPath    string
	ConfigPath  string
}

// New resolves the state and config locations for this user.
// ALIB_HOME wins; otherwise XDG variables, then APPDATA, then ~/.local/share and ~/.config.
func New() (*Vault, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return NewAt(home, filepath.Join(home, "config.yaml")), nil
	}

	rootPath, err := resolveDir("XDG_DATA_HOME", appName, ".local", "share")
	if err != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", err)
	}
	configDir, err := resolveDir("XDG_CONFIG_HOME", appName+"-config", ".config")
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	return NewAt(rootPath, filepath.Join(configDir, "config.yaml")), nil
}

// NewAt creates a Vault rooted at an explicit directory
func NewAt(rootPath, configPath string) *Vault {
	return &Vault{
		RootPath:    rootPath,
		StoragePath: filepath.Join(rootPath, "storage"),
		CachePath:   filepath.Join(rootPath, "cache"),
		LogsPath:    filepath.Join(rootPath, "logs"),
		ConfigPath:  configPath,
	}
}

// resolveDir returns $xdgVar/alib, %APPDATA%/<winName> or ~/<fallback...>/alib
func resolveDir(xdgVar, winName string, fallback ...string) (string, error) {
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, winName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// Initialize creates the directory layout. Directories are private to the
// user because storage holds the access token.
func (v *Vault) Initialize() error {
	for _, dir := range []string{v.RootPath, v.StoragePath, v.CachePath, v.LogsPath} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks if the vault has been initialized
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	return err == nil && info.IsDir()
}

// StorageFile returns the file backing a persistent storage key
func (v *Vault) StorageFile(key string) string {
	return filepath.Join(v.StoragePath, key+".json")
}

// LogFile returns the path of the structured log file
func (v *Vault) LogFile() string {
	return filepath.Join(v.LogsPath, appName+".log")
}

// GetCachePath returns the full path for a cached file
func (v *Vault) GetCachePath(filename string) string {
	return filepath.Join(v.CachePath, filename)
}

// CacheUsage reports the number of files under the cache and their total size
func (v *Vault) CacheUsage() (files int, bytes int64, err error) {
	err = filepath.WalkDir(v.CachePath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		bytes += info.Size()
		return nil
	})
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	return files, bytes, err
}

// CleanCache removes everything under the cache directory and returns how
// many top-level entries were deleted
func (v *Vault) CleanCache() (int, error) {
	entries, err := os.ReadDir(v.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	for i, entry := range entries {
		path := filepath.Join(v.CachePath, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return i, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return len(entries), nil
}
