package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. TSADMIN_TOKEN.
const EnvPrefix = "TSADMIN"

// Config holds CLI configuration stored at ~/.tsadmin/config.
type Config struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Username string `yaml:"username,omitempty"`
	Org      string `yaml:"org,omitempty"`
	Theme    string `yaml:"theme,omitempty"`
	VimKeys  bool   `yaml:"vim_keys"`
}

// Dir returns the directory holding config and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tsadmin")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads ~/.tsadmin/config and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and parses the config file at path. It fails when the file
// is missing (unless the token comes from the environment), readable by
// others, malformed, or lacks a token.
func LoadFrom(path string) (*Config, error) {
	env := envOverrides()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && env.Token != "" {
			cfg := &Config{}
			cfg.merge(env)
			return cfg, nil
		}
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.merge(env)

	if cfg.Token == "" {
		return nil, fmt.Errorf("config missing token")
	}

	return &cfg, nil
}

// Save writes the config to ~/.tsadmin/config with secure permissions.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to path with secure permissions.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}

func envOverrides() Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return Config{
		URL:   strings.TrimSpace(v.GetString("url")),
		Token: strings.TrimSpace(v.GetString("token")),
		Org:   strings.TrimSpace(v.GetString("org")),
	}
}

func (c *Config) merge(env Config) {
	if env.URL != "" {
		c.URL = env.URL
	}
	if env.Token != "" {
		c.Token = env.Token
	}
	if env.Org != "" {
		c.Org = env.Org
	}
}
