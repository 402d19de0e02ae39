package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/universal/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.StabilityTimeout != DefaultStabilityTimeout {
		t.Errorf("StabilityTimeout = %q, want %q", cfg.StabilityTimeout, DefaultStabilityTimeout)
	}
	if cfg.Cache.MaxEntries != 0 {
		t.Errorf("Cache.MaxEntries = %d, want 0 (unbounded)", cfg.Cache.MaxEntries)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if errors.Code(err) != "E141" {
		t.Errorf("Expected E141, got %v", err)
	}

	configJSON := `{
  "appSelector": "<app-root></app-root>",
  "module": {
    "id": "home",
    "template": "home.html",
    "styles": ["home.css"]
  },
  "stabilityTimeout": "5s",
  "cache": { "maxEntries": 16 },
  "server": { "addr": "127.0.0.1:8080" }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AppSelector != "<app-root></app-root>" {
		t.Errorf("AppSelector = %q", cfg.AppSelector)
	}
	if cfg.Document != cfg.AppSelector {
		t.Errorf("Document should default to AppSelector, got %q", cfg.Document)
	}
	if cfg.Module.ID != "home" || cfg.Module.Template != "home.html" {
		t.Errorf("Module = %+v", cfg.Module)
	}
	if len(cfg.Module.Styles) != 1 {
		t.Errorf("Module.Styles len = %d, want 1", len(cfg.Module.Styles))
	}
	if cfg.Cache.MaxEntries != 16 {
		t.Errorf("Cache.MaxEntries = %d, want 16", cfg.Cache.MaxEntries)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel should default, got %q", cfg.LogLevel)
	}
	d, err := cfg.StabilityTimeoutDuration()
	if err != nil || d != 5*time.Second {
		t.Errorf("StabilityTimeoutDuration = %v, %v", d, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `appSelector: "<app-root></app-root>"
module:
  template: app.html
resources:
  root: web
  manifest: web/manifest.json
watch: true
logLevel: debug
`
	if err := os.WriteFile(filepath.Join(tmpDir, "universal.yaml"), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Module.ID != "app.html" {
		t.Errorf("Module.ID should default to template, got %q", cfg.Module.ID)
	}
	if !cfg.Watch {
		t.Error("Watch should be true")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", cfg.SlogLevel())
	}
	if got, want := cfg.ResourceRoot(), filepath.Join(tmpDir, "web"); got != want {
		t.Errorf("ResourceRoot = %q, want %q", got, want)
	}
	if got, want := cfg.ManifestPath(), filepath.Join(tmpDir, "web", "manifest.json"); got != want {
		t.Errorf("ManifestPath = %q, want %q", got, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", ConfigFileName, "not valid json"},
		{"yaml", "universal.yml", "module: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("Expected error for invalid file")
			}
			if !strings.Contains(err.Error(), "E120") {
				t.Errorf("Expected E120 error, got: %v", err)
			}
		})
	}
}

func TestSave(t *testing.T) {
	for _, name := range []string{ConfigFileName, "universal.yaml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)

			cfg := New()
			cfg.AppSelector = "<app-root></app-root>"
			cfg.Module.Template = "app.html"

			// Save should fail without configPath set
			if err := cfg.Save(); err == nil {
				t.Error("Expected error when saving without path")
			}

			if err := cfg.SaveTo(configPath); err != nil {
				t.Fatalf("SaveTo error: %v", err)
			}

			loaded, err := LoadFile(configPath)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if loaded.AppSelector != cfg.AppSelector {
				t.Errorf("AppSelector = %q, want %q", loaded.AppSelector, cfg.AppSelector)
			}

			loaded.Cache.MaxEntries = 3
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save error: %v", err)
			}

			reloaded, err := LoadFile(configPath)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if reloaded.Cache.MaxEntries != 3 {
				t.Errorf("Cache.MaxEntries = %d, want 3", reloaded.Cache.MaxEntries)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := New()
		cfg.AppSelector = "<app-root></app-root>"
		cfg.Module.Template = "app.html"
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate should pass for valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"missing selector", func(c *Config) { c.AppSelector = "" }, "E121"},
		{"missing template", func(c *Config) { c.Module.Template = "" }, "E121"},
		{"bad timeout", func(c *Config) { c.StabilityTimeout = "soon" }, "E122"},
		{"zero timeout", func(c *Config) { c.StabilityTimeout = "0s" }, "E122"},
		{"negative cache", func(c *Config) { c.Cache.MaxEntries = -1 }, "E122"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "E122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if errors.Code(err) != tt.code {
				t.Errorf("code = %q, want %q (%v)", errors.Code(err), tt.code, err)
			}
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); err == nil {
		t.Error("Expected error without config")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "universal.yml"), []byte("appSelector: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	want, _ := filepath.Abs(tmpDir)
	if root != want {
		t.Errorf("root = %q, want %q", root, want)
	}
}
