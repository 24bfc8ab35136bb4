package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type GlobalConfig struct {
	// CurrentWorkspace is the board directory used when --dir is not given
	// and none is found above the working directory.
	CurrentWorkspace string `json:"currentWorkspace,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "contrast").
	Profile string `json:"profile,omitempty"`
	// DoubleClickMs is the window for a second click to start editing.
	DoubleClickMs int `json:"doubleClickMs,omitempty"`
	// MaxDepth bounds zone discovery; 0 means unbounded.
	MaxDepth int `json:"maxDepth,omitempty"`
}

// DoubleClick returns the configured window, or 0 when unset.
func (c *TUIConfig) DoubleClick() time.Duration {
	if c == nil || c.DoubleClickMs <= 0 {
		return 0
	}
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.dropboard).
	if v := strings.TrimSpace(os.Getenv("DROPBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// The CLI and the TUI may write concurrently; rename keeps readers from
	// seeing a half-written file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
