// ABOUTME: Application configuration loaded from XDG config, .env files and MOS_* variables
// ABOUTME: Missing files fall back to defaults; environment values always win
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/auth"
	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/models"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"
)

// Delays are the simulated latencies, in config form.
type Delays struct {
	Autosave time.Duration `yaml:"autosave" env:"AUTOSAVE"`
	Connect  time.Duration `yaml:"connect" env:"CONNECT"`
	Sync     time.Duration `yaml:"sync" env:"SYNC"`
	Chat     time.Duration `yaml:"chat" env:"CHAT"`
	Login    time.Duration `yaml:"login" env:"LOGIN"`
	Redirect time.Duration `yaml:"redirect" env:"REDIRECT"`
}

// Campaign converts to the workflow's delay set.
func (d Delays) Campaign() campaign.Delays {
	return campaign.Delays{
		Autosave: d.Autosave,
		Connect:  d.Connect,
		Sync:     d.Sync,
		Chat:     d.Chat,
	}
}

// DemoAccount is the account accepted by the built-in authenticator.
type DemoAccount struct {
	Email    string `yaml:"email" env:"EMAIL"`
	Password string `yaml:"password" env:"PASSWORD"`
}

type Config struct {
	Variant  string      `yaml:"variant" env:"VARIANT"`
	LogLevel string      `yaml:"log_level" env:"LOG_LEVEL"`
	WebAddr  string      `yaml:"web_addr" env:"WEB_ADDR"`
	Delays   Delays      `yaml:"delays" envPrefix:"DELAY_"`
	Demo     DemoAccount `yaml:"demo" envPrefix:"DEMO_"`
	// LoginEndpoint switches the login screen to an HTTP POST. Empty uses the demo account.
	LoginEndpoint string `yaml:"login_endpoint" env:"LOGIN_ENDPOINT"`
}

// Default returns the stock configuration.
func Default() *Config {
	d := campaign.DefaultDelays()
	return &Config{
		Variant:  string(models.VariantWorkspace),
		LogLevel: "info",
		WebAddr:  "localhost:8080",
		Delays: Delays{
			Autosave: d.Autosave,
			Connect:  d.Connect,
			Sync:     d.Sync,
			Chat:     d.Chat,
			Login:    time.Second,
			Redirect: time.Second,
		},
		Demo: DemoAccount{
			Email:    "demo@example.com",
			Password: "password123",
		},
	}
}

// Authenticator returns the login backend: an HTTP endpoint when one is
// configured, otherwise the demo account.
func (c *Config) Authenticator(clock clockwork.Clock) auth.Authenticator {
	if c.LoginEndpoint != "" {
		return &auth.HTTPAuthenticator{Endpoint: c.LoginEndpoint}
	}
	return &auth.StaticAuthenticator{
		Email:    c.Demo.Email,
		Password: c.Demo.Password,
		Delay:    c.Delays.Login,
		Clock:    clock,
	}
}

// Dir returns the XDG-compliant configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, "marketingos")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the default config file and applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path, then .env in the working directory, then MOS_* variables.
// A missing file or .env is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "MOS_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the app cannot start with.
func (c *Config) Validate() error {
	if _, err := models.ParseVariant(c.Variant); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	return nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
