package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config is the optional user configuration file (~/.kanban/config.yaml).
// Every field may be overridden by environment variables and then by flags.
type Config struct {
	// Dir is the data directory holding kanban.sqlite and kanban.log.
	Dir string `yaml:"dir,omitempty"`

	Store  StoreConfig  `yaml:"store,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
	Web    ServerConfig `yaml:"web,omitempty"`
	WebTUI ServerConfig `yaml:"webtui,omitempty"`
}

type StoreConfig struct {
	// URL selects the backend: empty or sqlite:// for the local file,
	// redis://host:port/db for Redis.
	URL string `yaml:"url,omitempty"`
	// Prefix namespaces keys in shared backends (Redis).
	Prefix string `yaml:"prefix,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kanban).
	if v := strings.TrimSpace(os.Getenv("KANBAN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kanban"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config at path, or the default path when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overlays KANBAN_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("KANBAN_DIR")); v != "" {
		c.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("KANBAN_STORE")); v != "" {
		c.Store.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("KANBAN_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Store.Prefix) == "" {
		c.Store.Prefix = "kanban:"
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	if strings.TrimSpace(c.Web.Addr) == "" {
		c.Web.Addr = "127.0.0.1:3335"
	}
	if strings.TrimSpace(c.WebTUI.Addr) == "" {
		c.WebTUI.Addr = "127.0.0.1:3334"
	}
}

// DataDir resolves the data directory: explicit Dir, else <config dir>/data.
func (c *Config) DataDir() (string, error) {
	if d := strings.TrimSpace(c.Dir); d != "" {
		return d, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

func Save(path string, c *Config) error {
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
