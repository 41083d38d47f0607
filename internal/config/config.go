package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"go-event-push/internal/infrastructure/logger"
	"go-event-push/internal/infrastructure/push"
)

// Config is the process configuration, loaded from the environment. Hub
// settings are re-validated by push.New before any connection is served.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	KeepAliveInterval time.Duration `env:"KEEPALIVE_INTERVAL" envDefault:"5s"`
	ChannelCapacity   int           `env:"CHANNEL_CAPACITY" envDefault:"64"`
	OverflowPolicy    string        `env:"OVERFLOW_POLICY" envDefault:"reject"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// PushConfig maps the environment values onto the hub configuration.
func (c *Config) PushConfig() *push.Config {
	return &push.Config{
		KeepAliveInterval: c.KeepAliveInterval,
		ChannelCapacity:   c.ChannelCapacity,
		Overflow:          push.OverflowPolicy(c.OverflowPolicy),
	}
}

// LoggerConfig maps the environment values onto the logger configuration.
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.NewDefaultConfig()
	lc.Level = logger.ParseLevel(c.LogLevel)
	lc.Format = c.LogFormat
	return lc
}
