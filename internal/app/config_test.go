package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"spectre/internal/app"
	"spectre/internal/domain/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != app.DefaultConfig() {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
logFormat: json
algorithmVersion: 0
userName: Robert Lee Mitchell
derivationRate: 0
metricsAddr: 127.0.0.1:9090
`)
	t.Setenv("SPECTRE_LOG_LEVEL", "error")

	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env should override file, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" || cfg.UserName != "Robert Lee Mitchell" || cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.AlgorithmVersion != types.AlgorithmV0 {
		t.Fatalf("explicit version 0 must be kept, got %d", cfg.AlgorithmVersion)
	}
	if cfg.DerivationRate != 0 || cfg.DerivationBurst != app.DefaultConfig().DerivationBurst {
		t.Fatalf("derivation limits: %+v", cfg)
	}
}

func TestLoadConfigHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	if err := os.MkdirAll(filepath.Join(home, ".spectre"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, ".spectre", "config.yaml"), []byte("userName: alice\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.UserName != "alice" {
		t.Fatalf("home config not applied: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if _, err := app.LoadConfig(writeConfig(t, "logLevel: [")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if _, err := app.LoadConfig(writeConfig(t, "algorithmVersion: 4\n")); err == nil {
		t.Fatal("expected error for unsupported version")
	}
	if _, err := app.LoadConfig(writeConfig(t, "logFormat: xml\n")); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
