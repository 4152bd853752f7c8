package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	CredentialsPath string `yaml:"credentials_path"` // empty = ~/.claude/.credentials.json
	Endpoint        string `yaml:"endpoint"`         // empty = production usage endpoint
	NoColor         bool   `yaml:"no_color"`
	DisplayMode     string `yaml:"display_mode"` // colors|minimal|background
	Debug           bool   `yaml:"debug"`
	DebugLogPath    string `yaml:"debug_log"`
}

// Global configuration instance
var cfg *Config

// Get returns the global configuration
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}

// Set replaces the global configuration.
func Set(c *Config) {
	cfg = c
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DisplayMode:  "colors",
		DebugLogPath: filepath.Join(os.TempDir(), "claude-usage-monitor.log"),
	}
}

// FilePath returns the location of the optional YAML config file.
func FilePath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "claude-usage-monitor", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "claude-usage-monitor", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path (if it
// exists) and environment variables, in increasing order of precedence.
// Command line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, c); err != nil {
				return c, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return c, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	c.CredentialsPath = getEnv("CLAUDE_USAGE_CREDENTIALS", c.CredentialsPath)
	c.Endpoint = getEnv("CLAUDE_USAGE_ENDPOINT", c.Endpoint)
	c.DisplayMode = getEnv("CLAUDE_USAGE_DISPLAY_MODE", c.DisplayMode)
	c.DebugLogPath = getEnv("CLAUDE_USAGE_DEBUG_LOG", c.DebugLogPath)
	c.Debug = getEnvBool("CLAUDE_USAGE_DEBUG", c.Debug)
	c.NoColor = getEnvBool("CLAUDE_USAGE_NO_COLOR", c.NoColor) || os.Getenv("NO_COLOR") != ""
	return c, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// DebugLog writes debug output to a log file if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	if cfg == nil || !cfg.Debug || cfg.DebugLogPath == "" {
		return
	}
	f, err := os.OpenFile(cfg.DebugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}
