package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Sternrassler/order-analytics/pkg/logging"
	"github.com/caarlos0/env/v6"
)

const (
	GinModeRelease = "release"
	GinModeDebug   = "debug"
)

type Config struct {
	Upstream *Upstream
	Auth     *Auth
	HTTP     *HTTP
	App      *App
}

type Upstream struct {
	BaseURL      string        `env:"UPSTREAM_URL" envDefault:"https://uzshopping.retailcrm.ru/api/v5/orders"`
	APIKey       string        `env:"UPSTREAM_API_KEY,required"`
	PageSize     int           `env:"PAGE_SIZE" envDefault:"100"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	Login    string `env:"LOGIN_USER" envDefault:"admin"`
	Password string `env:"LOGIN_PASSWORD,required"`
	Token    string `env:"AUTH_TOKEN,required"`
}

type HTTP struct {
	ListenAddr  string   `env:"LISTEN_ADDR" envDefault:":5000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

type App struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
}

// NewConfig loads the configuration from the process environment.
func NewConfig() (*Config, error) {
	return Load(environMap(os.Environ()))
}

// Load builds the configuration from the given environment.
func Load(environ map[string]string) (*Config, error) {
	var upstream Upstream
	var auth Auth
	var http HTTP
	var app App

	opts := env.Options{Environment: environ}

	if err := env.Parse(&upstream, opts); err != nil {
		return nil, fmt.Errorf("error parsing upstream config: %w", err)
	}
	if err := env.Parse(&auth, opts); err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}
	if err := env.Parse(&http, opts); err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	if err := env.Parse(&app, opts); err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	cfg := &Config{
		Upstream: &upstream,
		Auth:     &auth,
		HTTP:     &http,
		App:      &app,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that the env tags cannot express and normalizes
// the log level.
func (c *Config) Validate() error {
	var errs []error

	if c.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("UPSTREAM_URL must not be empty"))
	}
	if c.Upstream.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE must be >= 1 (got %d)", c.Upstream.PageSize))
	}
	if c.Upstream.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must be positive (got %s)", c.Upstream.FetchTimeout))
	}
	if c.Auth.Login == "" {
		errs = append(errs, errors.New("LOGIN_USER must not be empty"))
	}
	if level, err := logging.ParseLevel(c.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	} else {
		c.App.LogLevel = string(level)
	}
	if c.App.GinMode != GinModeRelease && c.App.GinMode != GinModeDebug {
		errs = append(errs, fmt.Errorf("GIN_MODE must be %q or %q (got %q)", GinModeRelease, GinModeDebug, c.App.GinMode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			m[key] = value
		}
	}
	return m
}
