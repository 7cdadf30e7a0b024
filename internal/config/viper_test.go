package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("environment: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Environment != "test" {
		t.Errorf("expected environment test, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Dashboard.DefaultCity != "London" {
		t.Errorf("expected default city London, got %s", cfg.Dashboard.DefaultCity)
	}
	if cfg.Dashboard.DefaultCountry != "United Kingdom" {
		t.Errorf("expected default country United Kingdom, got %s", cfg.Dashboard.DefaultCountry)
	}
	if cfg.Upstreams.GeocodingBaseURL != "https://geocoding-api.open-meteo.com/v1" {
		t.Errorf("unexpected geocoding base URL: %s", cfg.Upstreams.GeocodingBaseURL)
	}
	if cfg.Upstreams.Timeout != 10 {
		t.Errorf("expected default timeout 10, got %d", cfg.Upstreams.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
dashboard:
  default_city: Berlin
  default_country: Germany
upstreams:
  quote_base_url: http://localhost:8081
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Dashboard.DefaultCity != "Berlin" {
		t.Errorf("expected default city Berlin, got %s", cfg.Dashboard.DefaultCity)
	}
	if cfg.Upstreams.QuoteBaseURL != "http://localhost:8081" {
		t.Errorf("unexpected quote base URL: %s", cfg.Upstreams.QuoteBaseURL)
	}
	// Untouched sections keep their defaults
	if cfg.Upstreams.CountryBaseURL != "https://restcountries.com/v3.1" {
		t.Errorf("unexpected country base URL: %s", cfg.Upstreams.CountryBaseURL)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
