package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Locators != "" {
		t.Errorf("default locators path should be empty, got %q", s.Locators)
	}
	if s.MaxDepth != 128 {
		t.Errorf("expected default max depth 128, got %d", s.MaxDepth)
	}
	if s.Logger.Level != "info" {
		t.Errorf("expected default log level info, got %q", s.Logger.Level)
	}
	if s.Logger.Format != "console" {
		t.Errorf("expected default log format console, got %q", s.Logger.Format)
	}
	if s.Server.CacheTTL != 500*time.Millisecond {
		t.Errorf("expected default cache TTL 500ms, got %v", s.Server.CacheTTL)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestSettingsMapping(t *testing.T) {
	yamlInput := `
locators: /opt/locators.yaml
max_depth: 32
logger:
  level: debug
  format: json
  file: /var/log/axlocate.log
server:
  cache_ttl: 2s
`
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(yamlInput)); err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if s.Locators != "/opt/locators.yaml" {
		t.Errorf("locators: got %q", s.Locators)
	}
	if s.MaxDepth != 32 {
		t.Errorf("max_depth: got %d, want 32", s.MaxDepth)
	}
	if s.Logger.Level != "debug" || s.Logger.Format != "json" {
		t.Errorf("logger mangled: %+v", s.Logger)
	}
	if s.Logger.File != "/var/log/axlocate.log" {
		t.Errorf("logger.file: got %q", s.Logger.File)
	}
	if s.Server.CacheTTL != 2*time.Second {
		t.Errorf("cache_ttl: got %v, want 2s", s.Server.CacheTTL)
	}
	// A key the file does not set keeps its default.
	if s.Logger.MaxBackups != 3 {
		t.Errorf("logger.max_backups default lost: got %d", s.Logger.MaxBackups)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "axlocate.yaml")
	doc := "max_depth: 16\nlogger:\n  level: warn\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if s.MaxDepth != 16 {
		t.Errorf("max_depth: got %d, want 16", s.MaxDepth)
	}
	if s.Logger.Level != "warn" {
		t.Errorf("logger.level: got %q, want warn", s.Logger.Level)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Error("an explicitly named config file that does not exist should fail the load")
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if s.MaxDepth != Default().MaxDepth {
		t.Errorf("expected defaults when no config exists, got %+v", s)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AXLOCATE_LOGGER_LEVEL", "debug")
	t.Setenv("AXLOCATE_MAX_DEPTH", "7")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if s.Logger.Level != "debug" {
		t.Errorf("env override lost: logger.level got %q, want debug", s.Logger.Level)
	}
	if s.MaxDepth != 7 {
		t.Errorf("env override lost: max_depth got %d, want 7", s.MaxDepth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"negative max depth", func(s *Settings) { s.MaxDepth = -1 }, "max_depth"},
		{"bad logger format", func(s *Settings) { s.Logger.Format = "xml" }, "logger.format"},
		{"negative cache ttl", func(s *Settings) { s.Server.CacheTTL = -time.Second }, "cache_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error naming %s, got %v", tt.wantErr, err)
			}
		})
	}
}
