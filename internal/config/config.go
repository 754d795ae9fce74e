package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvBaseURL  = "SEARCHUI_BASE_URL"
	EnvLogLevel = "SEARCHUI_LOG_LEVEL"
	EnvLogFile  = "SEARCHUI_LOG_FILE"
)

// BackendConfig points the client at the search backend.
type BackendConfig struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// Timeout converts TimeoutSecs to a duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// LogConfig controls the log file. An empty File selects the default location.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	// ResultLimit caps rendered cards; 0 shows every result.
	ResultLimit int `yaml:"result_limit"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Backend BackendConfig `yaml:"backend"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./searchui.yaml first, then ~/.config/searchui/config.yaml.
// Unlike Save it never writes; a missing file yields defaults.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "searchui.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns a fresh config holding the built-in defaults.
func Default() *AppConfig { return defaultConfig() }

// DefaultUserConfigPath is ~/.config/searchui/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "searchui", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{BaseURL: "http://localhost:5000", TimeoutSecs: 30},
		Log:     LogConfig{Level: "info"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:5000"
	}
	if cfg.Backend.TimeoutSecs <= 0 {
		cfg.Backend.TimeoutSecs = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.UI.ResultLimit < 0 {
		cfg.UI.ResultLimit = 0
	}
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Log.File = v
	}
}
