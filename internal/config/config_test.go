package config

import (
	"strings"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"UPSTREAM_API_KEY": "key",
		"LOGIN_PASSWORD":   "pw",
		"AUTH_TOKEN":       "token",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(baseEnv())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Upstream.BaseURL != "https://uzshopping.retailcrm.ru/api/v5/orders" {
		t.Errorf("BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.Upstream.PageSize)
	}
	if cfg.Upstream.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %s, want 10s", cfg.Upstream.FetchTimeout)
	}
	if cfg.Auth.Login != "admin" {
		t.Errorf("Login = %q, want admin", cfg.Auth.Login)
	}
	if cfg.HTTP.ListenAddr != ":5000" {
		t.Errorf("ListenAddr = %q, want :5000", cfg.HTTP.ListenAddr)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.HTTP.CORSOrigins)
	}
	if cfg.App.LogLevel != "info" || cfg.App.GinMode != GinModeRelease {
		t.Errorf("App = %+v", cfg.App)
	}
}

func TestLoad_Overrides(t *testing.T) {
	environ := baseEnv()
	environ["UPSTREAM_URL"] = "http://localhost:9999/api/v5/orders"
	environ["PAGE_SIZE"] = "50"
	environ["FETCH_TIMEOUT"] = "2s"
	environ["LISTEN_ADDR"] = "127.0.0.1:8080"
	environ["CORS_ORIGINS"] = "http://localhost:3000,https://dash.example.com"
	environ["LOG_PRETTY"] = "true"

	cfg, err := Load(environ)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Upstream.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.Upstream.PageSize)
	}
	if cfg.Upstream.FetchTimeout != 2*time.Second {
		t.Errorf("FetchTimeout = %s, want 2s", cfg.Upstream.FetchTimeout)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.HTTP.CORSOrigins)
	}
	if !cfg.App.LogPretty {
		t.Error("LogPretty should be true")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{
			name:    "missing api key",
			mutate:  func(e map[string]string) { delete(e, "UPSTREAM_API_KEY") },
			wantErr: "UPSTREAM_API_KEY",
		},
		{
			name:    "missing token",
			mutate:  func(e map[string]string) { delete(e, "AUTH_TOKEN") },
			wantErr: "AUTH_TOKEN",
		},
		{
			name:    "zero page size",
			mutate:  func(e map[string]string) { e["PAGE_SIZE"] = "0" },
			wantErr: "PAGE_SIZE must be >= 1",
		},
		{
			name:    "negative timeout",
			mutate:  func(e map[string]string) { e["FETCH_TIMEOUT"] = "-1s" },
			wantErr: "FETCH_TIMEOUT must be positive",
		},
		{
			name:    "bad gin mode",
			mutate:  func(e map[string]string) { e["GIN_MODE"] = "test" },
			wantErr: "GIN_MODE",
		},
		{
			name:    "unknown log level",
			mutate:  func(e map[string]string) { e["LOG_LEVEL"] = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "unparseable page size",
			mutate:  func(e map[string]string) { e["PAGE_SIZE"] = "many" },
			wantErr: "PageSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := baseEnv()
			tt.mutate(environ)

			_, err := Load(environ)
			if err == nil {
				t.Fatal("Expected error but got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_NormalizesLogLevel(t *testing.T) {
	environ := baseEnv()
	environ["LOG_LEVEL"] = "WARNING"

	cfg, err := Load(environ)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.App.LogLevel)
	}
}

func TestEnvironMap(t *testing.T) {
	m := environMap([]string{"A=1", "B=x=y", "BROKEN"})

	if m["A"] != "1" || m["B"] != "x=y" {
		t.Errorf("environMap = %v", m)
	}
	if _, ok := m["BROKEN"]; ok {
		t.Error("Entries without '=' should be skipped")
	}
}
