// Package settings persists the monitor's user preferences: the overlay
// shortcut, whether onboarding has completed, and the usage layout.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/erwint/claude-usage-monitor/internal/config"
)

// LayoutType selects how usage is rendered.
type LayoutType string

const (
	LayoutSimple   LayoutType = "simple"
	LayoutDetailed LayoutType = "detailed"
)

// LayoutConfig holds display preferences.
type LayoutConfig struct {
	LayoutType LayoutType `json:"layout_type"`
}

// ShortcutConfig is a global shortcut such as ctrl+shift + u.
type ShortcutConfig struct {
	Modifier string `json:"modifier"`
	Key      string `json:"key"`
}

// AppSettings is the settings document.
type AppSettings struct {
	Shortcut    ShortcutConfig `json:"shortcut"`
	FirstLaunch bool           `json:"first_launch"`
	Layout      LayoutConfig   `json:"layout"`
}

// Default returns the settings used before anything was saved.
func Default() AppSettings {
	return AppSettings{
		Shortcut:    DefaultShortcut(runtime.GOOS),
		FirstLaunch: true,
		Layout:      LayoutConfig{LayoutType: LayoutSimple},
	}
}

// DefaultShortcut returns the platform's default overlay shortcut.
func DefaultShortcut(goos string) ShortcutConfig {
	switch goos {
	case "darwin":
		return ShortcutConfig{Modifier: "super+shift", Key: "u"}
	case "windows":
		return ShortcutConfig{Modifier: "alt", Key: "r"}
	default:
		return ShortcutConfig{Modifier: "ctrl+shift", Key: "u"}
	}
}

// Path returns ~/.claude-usage-monitor/settings.json.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".claude-usage-monitor", "settings.json"), nil
}

// Load reads the settings at path. A missing, unreadable or malformed file
// yields the defaults.
func Load(path string) AppSettings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			config.DebugLog("Failed to read settings %s: %v", path, err)
		}
		return Default()
	}

	// A missing layout falls back to the default layout.
	s := AppSettings{Layout: LayoutConfig{LayoutType: LayoutSimple}}
	if err := json.Unmarshal(data, &s); err != nil {
		config.DebugLog("Failed to parse settings %s: %v", path, err)
		return Default()
	}
	if s.Layout.LayoutType != LayoutSimple && s.Layout.LayoutType != LayoutDetailed {
		s.Layout.LayoutType = LayoutSimple
	}
	return s
}

// Save writes s to path, creating the parent directory.
func Save(path string, s AppSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Reset removes the settings file so the next launch is treated as the
// first one.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove settings: %w", err)
	}
	return nil
}
