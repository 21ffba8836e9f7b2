// Package config loads dotsnake settings from an optional YAML file and the
// environment.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen       string        `yaml:"listen"`
	TickInterval time.Duration `yaml:"tick_interval"`
	MaxSessions  int           `yaml:"max_sessions"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	LogLevel     string        `yaml:"log_level"`
}

func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path when it is not empty, then applies PORT and SNAKE_TICK.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
	if tick := os.Getenv("SNAKE_TICK"); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return errors.Wrap(err, "SNAKE_TICK")
		}
		c.TickInterval = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
		log.Printf("Defaulting to listen on %s", c.Listen)
	}
	if c.TickInterval == 0 {
		c.TickInterval = 150 * time.Millisecond
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = 64
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c.TickInterval < 0 {
		return errors.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.MaxSessions < 0 {
		return errors.Errorf("max_sessions must be positive, got %d", c.MaxSessions)
	}
	if c.WriteTimeout < 0 {
		return errors.Errorf("write_timeout must be positive, got %s", c.WriteTimeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// ApplyLogging sets the global logrus level.
func (c *Config) ApplyLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
