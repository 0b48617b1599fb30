// Package config handles the configuration directory, settings file and
// session database paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "hunnydu"

	// SettingsFile is the optional settings filename.
	SettingsFile = "settings.yaml"

	// SessionDBFile is the durable session store filename.
	SessionDBFile = "session.db"

	// DefaultAPIURL is the API base URL used when none is configured.
	DefaultAPIURL = "http://localhost:5000"

	// DefaultTimeout is the per-request timeout used when none is configured.
	DefaultTimeout = 10 * time.Second

	// EnvAPIURL overrides the configured API base URL.
	EnvAPIURL = "HUNNYDU_API_URL"
)

// settings is the on-disk shape of settings.yaml.
type settings struct {
	APIURL         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the HunnyDU API.
	APIURL string

	// Timeout is the per-request timeout applied to every action.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory,
// loading settings.yaml if it exists. The HUNNYDU_API_URL environment
// variable takes precedence over the settings file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
	}

	data, err := os.ReadFile(cfg.SettingsPath())
	if err == nil {
		var s settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
		if s.APIURL != "" {
			cfg.APIURL = s.APIURL
		}
		if s.TimeoutSeconds > 0 {
			cfg.Timeout = time.Duration(s.TimeoutSeconds) * time.Second
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIURL = url
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// SessionDBPath returns the path to the durable session store.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.Dir, SessionDBFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
