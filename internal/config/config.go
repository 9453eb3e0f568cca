// Package config loads bridge configuration from an optional YAML file
// and ITALIAN_JOKES_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings for both the stdio and HTTP binaries.
type Config struct {
	Port           string        `mapstructure:"port"`
	Token          string        `mapstructure:"token"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load reads configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("token", "")
	v.SetDefault("base_url", "https://italian-jokes.vercel.app/api/jokes")
	v.SetDefault("request_timeout", 10*time.Second)

	v.SetEnvPrefix("ITALIAN_JOKES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the servers cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port is required")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}
