// Package config loads the application configuration from Viper, which
// merges the config file, INVESTBOT_ environment variables, and defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/investbot-app/investbot/internal/common"
)

// Config holds every tunable the binary needs at startup.
type Config struct {
	DatabasePath string
	AdminPhone   string
	ServerAddr   string
	LogLevel     string
	LogFormat    string

	SendTimeout    time.Duration
	RetryBaseDelay time.Duration
	MaxRetries     int

	BroadcastDelay time.Duration
	ProbeInterval  time.Duration
}

// SetDefaults registers every default value with Viper. Call it before
// reading the config file so unset keys still resolve.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/investbot/investbot.db")
	viper.SetDefault("server.addr", ":3000")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("transport.send_timeout", "30s")
	viper.SetDefault("transport.retry_base_delay", "5s")
	viper.SetDefault("transport.max_retries", 5)
	viper.SetDefault("transport.probe_interval", "30m")
	viper.SetDefault("scheduler.broadcast_delay", "2s")
}

// Load materializes the configuration from Viper's merged view.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath:   ExpandPath(viper.GetString("database.path")),
		AdminPhone:     viper.GetString("admin.phone"),
		ServerAddr:     viper.GetString("server.addr"),
		LogLevel:       viper.GetString("log.level"),
		LogFormat:      viper.GetString("log.format"),
		SendTimeout:    viper.GetDuration("transport.send_timeout"),
		RetryBaseDelay: viper.GetDuration("transport.retry_base_delay"),
		MaxRetries:     viper.GetInt("transport.max_retries"),
		BroadcastDelay: viper.GetDuration("scheduler.broadcast_delay"),
		ProbeInterval:  viper.GetDuration("transport.probe_interval"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the application cannot run with.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("%w: server.addr", common.ErrMissingConfig)
	}
	if c.SendTimeout <= 0 {
		return fmt.Errorf("%w: transport.send_timeout must be positive", common.ErrInvalidConfig)
	}
	if c.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: transport.retry_base_delay must be positive", common.ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: transport.max_retries cannot be negative", common.ErrInvalidConfig)
	}
	if c.BroadcastDelay < 0 {
		return fmt.Errorf("%w: scheduler.broadcast_delay cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
