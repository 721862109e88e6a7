package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
watch:
  claude_dir: "/srv/claude"
  tick_rate: 50ms
  dormant_after: 10m
server:
  enabled: true
  port: 9090
pid_file: "/tmp/custom.pid"
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Watch.ClaudeDir != "/srv/claude" {
		t.Errorf("Watch.ClaudeDir = %q, want %q", cfg.Watch.ClaudeDir, "/srv/claude")
	}
	if cfg.Watch.TickRate != 50*time.Millisecond {
		t.Errorf("Watch.TickRate = %v, want 50ms", cfg.Watch.TickRate)
	}
	if cfg.Watch.DormantAfter != 10*time.Minute {
		t.Errorf("Watch.DormantAfter = %v, want 10m", cfg.Watch.DormantAfter)
	}
	if !cfg.Server.Enabled {
		t.Error("Server.Enabled = false, want true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.PIDFile != "/tmp/custom.pid" {
		t.Errorf("PIDFile = %q, want %q", cfg.PIDFile, "/tmp/custom.pid")
	}

	// Defaults should still be applied for unspecified fields.
	if cfg.Watch.ScanEveryTicks != 20 {
		t.Errorf("Watch.ScanEveryTicks = %d, want default 20", cfg.Watch.ScanEveryTicks)
	}
	if cfg.Watch.FreshnessWindow != 5*time.Minute {
		t.Errorf("Watch.FreshnessWindow = %v, want default 5m", cfg.Watch.FreshnessWindow)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default %q", cfg.Server.Host, "127.0.0.1")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Watch.TickRate != 100*time.Millisecond {
		t.Errorf("Watch.TickRate = %v, want default 100ms", cfg.Watch.TickRate)
	}
	if cfg.Watch.SummaryMaxChars != 150 {
		t.Errorf("Watch.SummaryMaxChars = %d, want default 150", cfg.Watch.SummaryMaxChars)
	}
	if cfg.Server.Enabled {
		t.Error("Server.Enabled = true, want default false")
	}
	if cfg.PIDFile == "" {
		t.Error("PIDFile should have a default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Addr(); got != "127.0.0.1:8321" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8321")
	}

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9000
	if got := cfg.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9000")
	}
}
