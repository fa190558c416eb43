package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type Config struct {
	// Running in production or not
	Environment Environment `env:"APP_ENV" envDefault:"development"`

	// Local app host and port
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT" envDefault:"8765"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Cross-origin allow-list, evaluated in order.
	// Entries ending in ":*" match any port on that host.
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"https://www.youtube.com,https://youtube.com,http://localhost:*,http://127.0.0.1:*"`

	// YouTube settings
	YouTubeTimeout   time.Duration `env:"YT_TIMEOUT" envDefault:"20s"`
	YouTubeProxyURL  string        `env:"YT_PROXY_URL"`
	YouTubeUserAgent string        `env:"YT_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"`

	// Upstream fetches per minute, zero disables the limiter
	FetchRPM int64 `env:"FETCH_RPM" envDefault:"0"`

	// Redis, optional backend for the fetch limiter
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`
}

// New creates new config object
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Parse parses and validates the config from the environment
func Parse() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Debug reports whether verbose behavior is on
func (c *Config) Debug() bool {
	return c.Environment != Production
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) validate() error {

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.FetchRPM < 0 {
		return fmt.Errorf("invalid fetch limit %d", c.FetchRPM)
	}

	if c.YouTubeProxyURL != "" {
		if _, err := url.Parse(c.YouTubeProxyURL); err != nil {
			return fmt.Errorf("invalid proxy url; %w", err)
		}
	}

	return nil
}
