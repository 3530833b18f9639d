package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Level = %s, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Default output should be JSON")
	}
	if cfg.Service != "order-analytics" {
		t.Errorf("Service = %q, want order-analytics", cfg.Service)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "INFO", want: LevelInfo},
		{input: " warn ", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "trace", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     LogLevel
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{level: LevelDebug, wantDebug: true, wantInfo: true, wantWarn: true},
		{level: LevelInfo, wantInfo: true, wantWarn: true},
		{level: LevelWarn, wantWarn: true},
		{level: LevelError},
		{level: "bogus", wantInfo: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			buf := &bytes.Buffer{}
			Setup(Config{Level: tt.level, Output: buf})

			logger := NewLogger("loader")
			logger.Debug().Msg("debug-line")
			logger.Info().Msg("info-line")
			logger.Warn().Msg("warn-line")
			logger.Error().Msg("error-line")

			out := buf.String()
			checks := map[string]bool{
				"debug-line": tt.wantDebug,
				"info-line":  tt.wantInfo,
				"warn-line":  tt.wantWarn,
				"error-line": true,
			}
			for msg, want := range checks {
				if got := strings.Contains(out, msg); got != want {
					t.Errorf("%s present = %v, want %v", msg, got, want)
				}
			}
		})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestNewLogger_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{Level: LevelInfo, Output: buf, Service: "order-analytics"})

	logger := NewLogger("order-cache")
	logger.Info().Int("orders", 140).Msg("Loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not a JSON line: %v (%q)", err, buf.String())
	}

	want := map[string]any{
		"service":   "order-analytics",
		"component": "order-cache",
		"level":     "info",
		"message":   "Loaded",
		"orders":    float64(140),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("Expected timestamp field")
	}
}

func TestWithRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	base := zerolog.New(buf)

	tagged := WithRequestID(base, "req-1")
	tagged.Info().Msg("tagged")
	untagged := WithRequestID(base, "")
	untagged.Info().Msg("untagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"request_id":"req-1"`) {
		t.Errorf("First line missing request_id: %s", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("Empty id should not add a field: %s", lines[1])
	}
}

func TestSetup_Pretty(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Output: buf, Pretty: true})

	logger.Info().Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") {
		t.Errorf("Expected message in console output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("Pretty output should not be JSON, got %q", out)
	}
}

func TestSetup_NilOutputDefaults(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Setup with nil output panicked: %v", r)
		}
	}()

	Setup(Config{Level: LevelError})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
