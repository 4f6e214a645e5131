// Package config loads the service configuration from a yaml file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"1048576" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSOrigins is a comma separated list of allowed origins
		CORSOrigins string `env:"CORS_ORIGINS" env-default:"http://localhost:3000" yaml:"corsOrigins"`
		// CookieSecure marks the auth cookie as Secure; disable only for local development
		CookieSecure bool `env:"COOKIE_SECURE" env-default:"true" yaml:"cookieSecure"`
		// TrustProxyHeaders keys rate limits by forwarding headers; set only behind a trusted proxy
		TrustProxyHeaders bool `env:"HTTP_TRUST_PROXY_HEADERS" env-default:"false" yaml:"trustProxyHeaders"`
	} `yaml:"http"`

	// Database contains the sqlite settings
	Database struct {
		// Path is the sqlite database file
		Path string `env:"DATABASE_PATH" env-default:"lamenar.db" yaml:"path"`
	} `yaml:"database"`

	// JWT contains access token settings
	JWT struct {
		// Secret is the HMAC key; at least 32 characters
		Secret string `env:"JWT_SECRET_KEY" yaml:"secret"`
		// Algorithm is one of HS256, HS384, HS512
		Algorithm string `env:"JWT_ALGORITHM" env-default:"HS256" yaml:"algorithm"`
		// AccessTokenExpireMinutes is the lifetime of issued tokens
		AccessTokenExpireMinutes int `env:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"10080" yaml:"accessTokenExpireMinutes"` //nolint: lll
	} `yaml:"jwt"`

	// BcryptCost is the bcrypt work factor
	BcryptCost int `env:"BCRYPT_COST" env-default:"12" yaml:"bcryptCost"`

	// RateLimit throttles signup and login attempts per client IP
	RateLimit struct {
		// PerSecond is the refill rate of each bucket
		PerSecond float64 `env:"RATE_LIMIT_PER_SECOND" env-default:"0.5" yaml:"perSecond"`
		// Burst is the bucket capacity
		Burst float64 `env:"RATE_LIMIT_BURST" env-default:"10" yaml:"burst"`
	} `yaml:"rateLimit"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads configuration from the yaml file at configPath when it exists,
// otherwise from the environment alone, and validates the result.
func Load(configPath string) (*Config, error) {
	var cfg Config

	var err error
	if _, statErr := os.Stat(configPath); statErr == nil {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot express as tags.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET_KEY must be at least 32 characters for HMAC security")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWT.Algorithm)
	}
	if c.JWT.AccessTokenExpireMinutes <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate limit must have a positive rate and a burst of at least 1")
	}

	return nil
}

// AccessTokenTTL returns the configured token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpireMinutes) * time.Minute
}

// CORSOriginList splits the comma separated CORS origins.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.HTTP.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}
