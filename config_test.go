package main

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"tls pair", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, false},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, true},
		{"key without cert", func(c *Config) { c.tlsKey = "key.pem" }, true},
		{"port too low", func(c *Config) { c.port = 0 }, true},
		{"port too high", func(c *Config) { c.port = 65536 }, true},
		{"no dataset", func(c *Config) { c.dataset = "" }, true},
		{"zero search limit", func(c *Config) { c.searchLimit = 0 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				dataset:     "data/footle_players.csv",
				port:        8080,
				searchLimit: defaultSearchLimit,
			}
			tc.mutate(cfg)

			err := cfg.validate()
			if tc.wantErr && err == nil {
				t.Error("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := &Config{}
	if got := cfg.scheme(); got != "http" {
		t.Errorf("expected http, got %q", got)
	}

	cfg.tlsCert, cfg.tlsKey = "cert.pem", "key.pem"
	if got := cfg.scheme(); got != "https" {
		t.Errorf("expected https, got %q", got)
	}
}

func TestNewCmdDefaults(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)

	if cfg.bind != "0.0.0.0" {
		t.Errorf("expected the default bind address, got %q", cfg.bind)
	}
	if cfg.port != 8080 {
		t.Errorf("expected the default port, got %d", cfg.port)
	}
	if cfg.dataset != "data/footle_players.csv" {
		t.Errorf("expected the default dataset path, got %q", cfg.dataset)
	}
	if cfg.searchLimit != defaultSearchLimit {
		t.Errorf("expected the default search limit, got %d", cfg.searchLimit)
	}
	if cfg.sessionTimeout != 24*time.Hour {
		t.Errorf("expected the default session timeout, got %s", cfg.sessionTimeout)
	}
}

func TestNewCmdEnvOverrides(t *testing.T) {
	t.Setenv("FOOTLE_PORT", "9999")
	t.Setenv("FOOTLE_SEARCH_LIMIT", "3")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 9999 {
		t.Errorf("expected the env port, got %d", cfg.port)
	}
	if cfg.searchLimit != 3 {
		t.Errorf("expected the env search limit, got %d", cfg.searchLimit)
	}
}
