package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings loaded from a YAML file
type Config struct {
	Bind        string        `yaml:"bind"`
	Port        int           `yaml:"port"`
	Interval    time.Duration `yaml:"interval"`
	TickTimeout time.Duration `yaml:"tick_timeout"`
	Devices     []string      `yaml:"devices"`
	Swap        bool          `yaml:"swap"`
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		Bind:        "0.0.0.0",
		Port:        8080,
		Interval:    time.Second,
		TickTimeout: 10 * time.Second,
		Devices:     []string{},
		Swap:        true,
		LogLevel:    "info",
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the monitors cannot run with
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.TickTimeout <= 0 {
		return fmt.Errorf("tick_timeout must be positive, got %s", c.TickTimeout)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// Address returns the host:port the API listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
