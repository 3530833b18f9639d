// Package logging configures the process-wide zerolog logger and hands out
// component loggers derived from it.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is a textual level as read from LOG_LEVEL.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written. Unknown levels fall back to info.
	Level LogLevel

	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// Service is attached to every entry as the "service" field when set.
	Service string
}

// DefaultConfig returns JSON logging at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Output:  os.Stderr,
		Service: "order-analytics",
	}
}

// Setup builds the root logger, installs it as the zerolog global and
// returns it. Component loggers created afterwards inherit its fields.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(levelOrInfo(cfg.Level))

	var out io.Writer = os.Stderr
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	fields := zerolog.New(out).With().Timestamp()
	if cfg.Service != "" {
		fields = fields.Str("service", cfg.Service)
	}

	log.Logger = fields.Logger()
	return log.Logger
}

// ParseLevel validates a textual level. "warning" is accepted for warn.
func ParseLevel(s string) (LogLevel, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "warning" {
		normalized = string(LevelWarn)
	}
	switch LogLevel(normalized) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return LogLevel(normalized), nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func levelOrInfo(level LogLevel) zerolog.Level {
	parsed, err := ParseLevel(string(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(string(parsed))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger returns a child of the global logger tagged with component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// WithRequestID tags logger with the request id of an HTTP request.
func WithRequestID(logger zerolog.Logger, id string) zerolog.Logger {
	if id == "" {
		return logger
	}
	return logger.With().Str("request_id", id).Logger()
}

// Levels as used across the service:
//
//	debug  cache slot state, the empty page that ends a load
//	info   each loaded page, load summary, processed requests, startup/shutdown
//	warn   failed page fetches, partial collection cached, rejected logins
//	error  recovered handler panics, failed shutdown
//
// Common fields: page, orders, duration, error_class, truncated, request_id.
// Credentials, API keys, bearer tokens and Authorization headers are never logged.
