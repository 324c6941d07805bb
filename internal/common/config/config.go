package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRemote      = "heroku"
	DefaultBranch      = "master"
	DefaultBackend     = "auto"
	DefaultAPIURL      = "https://api.heroku.com"
	DefaultPushTimeout = 10 * time.Minute
)

var (
	ErrEmailNotSet        = errors.New("heroku email is not configured: run 'hkpush init' or set heroku.email")
	ErrInvalidPushTimeout = errors.New("invalid git.push_timeout")
)

// Config represents the application configuration
type Config struct {
	Heroku HerokuConfig `yaml:"heroku"`
	Git    GitConfig    `yaml:"git"`
}

// HerokuConfig holds Heroku account settings. The API token is never stored here.
type HerokuConfig struct {
	Email  string `yaml:"email"`
	APIURL string `yaml:"api_url,omitempty"`
}

// GitConfig holds git remote and push settings
type GitConfig struct {
	Backend     string `yaml:"backend"`      // "auto", "structured" or "command"
	Remote      string `yaml:"remote"`       // Remote name, "heroku" by default
	Branch      string `yaml:"branch"`       // Branch pushed on deploy
	PushTimeout string `yaml:"push_timeout"` // Go duration, e.g. "10m"
}

// Default returns a Config holding default values
func Default() *Config {
	return &Config{
		Heroku: HerokuConfig{
			APIURL: DefaultAPIURL,
		},
		Git: GitConfig{
			Backend:     DefaultBackend,
			Remote:      DefaultRemote,
			Branch:      DefaultBranch,
			PushTimeout: DefaultPushTimeout.String(),
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. $XDG_CONFIG_HOME/hkpush/config.yaml (priority)
// 2. ~/.hkpush/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return []string{
		filepath.Join(xdg.ConfigHome, "hkpush", "config.yaml"),
		filepath.Join(home, ".hkpush", "config.yaml"),
	}, nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path.
// A missing file is created with default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetPushTimeout parses git.push_timeout, falling back to the default when empty
func (c *Config) GetPushTimeout() (time.Duration, error) {
	if c.Git.PushTimeout == "" {
		return DefaultPushTimeout, nil
	}
	d, err := time.ParseDuration(c.Git.PushTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPushTimeout, c.Git.PushTimeout)
	}
	return d, nil
}

// GetEmail returns the configured Heroku account email
func (c *Config) GetEmail() (string, error) {
	if c.Heroku.Email == "" {
		return "", ErrEmailNotSet
	}
	return c.Heroku.Email, nil
}

// GetAPIURL returns the Heroku API base URL
func (c *Config) GetAPIURL() string {
	if c.Heroku.APIURL == "" {
		return DefaultAPIURL
	}
	return c.Heroku.APIURL
}
