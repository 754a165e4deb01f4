package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API     API     `yaml:"api" envPrefix:"API_"`
	Session Session `yaml:"session" envPrefix:"SESSION_"`
	Logger  Logger  `yaml:"logger" envPrefix:"LOGGER_"`
}

type API struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type Session struct {
	TokenFile string `yaml:"token_file" env:"TOKEN_FILE"`
}

type Logger struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

const envPrefix = "HACKLENS_"

// Load reads the YAML config file and applies HACKLENS_* environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

// FromEnv builds a config from environment variables alone, for consumers
// that ship no config file.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

func applyEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Session.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("session.token_file is not set and no home directory is available: %w", err)
		}
		c.Session.TokenFile = filepath.Join(home, ".hacklens", "token")
	}
	return nil
}

// InitLogger builds a zap logger from the config and installs it as the
// global, so package code can use zap.S().
func InitLogger(cfg Logger) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if cfg.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
