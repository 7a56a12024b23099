package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SOLRDEX_TEST_URL", "http://solr:8983/solr/books")
	data := []byte(`
solr:
  url: ${SOLRDEX_TEST_URL}
  username: ${SOLRDEX_TEST_USER:-admin}
  password: ${SOLRDEX_TEST_PASSWORD:-pw}
logging:
  level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Solr.URL != "http://solr:8983/solr/books" {
		t.Errorf("url = %q", cfg.Solr.URL)
	}
	if cfg.Solr.Username != "admin" || cfg.Solr.Password != "pw" {
		t.Errorf("credentials = %q/%q, want defaults", cfg.Solr.Username, cfg.Solr.Password)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Solr.URL == "" {
		t.Error("url default not applied")
	}
	if cfg.Solr.TimeoutSec != 10 || cfg.Solr.Timeout() != 10*time.Second {
		t.Errorf("timeout = %d, want 10", cfg.Solr.TimeoutSec)
	}
	if cfg.Solr.DefaultRows != 10 {
		t.Errorf("default_rows = %d, want 10", cfg.Solr.DefaultRows)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Solr: SolrConfig{URL: "https://search.example.com/solr/core"}}, ""},
		{"relative url", Config{Solr: SolrConfig{URL: "solr/core"}}, "solr.url"},
		{"bad scheme", Config{Solr: SolrConfig{URL: "ftp://host/solr"}}, "solr.url"},
		{"password without user", Config{Solr: SolrConfig{URL: "http://h/solr/c", Password: "x"}}, "solr.password"},
		{"bad level", Config{Solr: SolrConfig{URL: "http://h/solr/c"}, Logging: LoggingConfig{Level: "trace"}}, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("solr:\n  url: http://localhost:8983/solr/films\n  timeout_sec: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Solr.TimeoutSec != 3 {
		t.Errorf("timeout_sec = %d, want 3", cfg.Solr.TimeoutSec)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Solr.URL == "" {
		t.Error("local config has no solr.url")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
