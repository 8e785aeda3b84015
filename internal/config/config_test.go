package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("a missing config file should fall back to defaults: %v", err)
	}
	if cfg.Data.Source != "synthetic" {
		t.Errorf("expected synthetic default source, got %q", cfg.Data.Source)
	}
	if len(cfg.Data.Symbols) == 0 {
		t.Error("expected a default symbol universe")
	}
	if cfg.Output.ChartDir == "" || cfg.Output.ReportPath == "" {
		t.Error("expected default output paths")
	}
	if cfg.Request.TimeoutSeconds <= 0 || cfg.Request.MaxTurns == 0 {
		t.Error("expected default request limits")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
data:
  source: "yahoo"
  symbols: ["NVDA"]
  lookback_days: 30
openai:
  model: "gpt-4o"
request:
  timeout_seconds: 45
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATA_SOURCE", "synthetic")
	t.Setenv("REQUEST_TIMEOUT", "90")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Source != "synthetic" {
		t.Errorf("env should override file: got %q", cfg.Data.Source)
	}
	if cfg.Request.TimeoutSeconds != 90 {
		t.Errorf("env should override file timeout: got %d", cfg.Request.TimeoutSeconds)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("file value should survive: got %q", cfg.OpenAI.Model)
	}
	if len(cfg.Data.Symbols) != 1 || cfg.Data.Symbols[0] != "NVDA" {
		t.Errorf("file symbols should survive: got %v", cfg.Data.Symbols)
	}
}

func TestLoad_InvalidTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Request.TimeoutSeconds != 120 {
		t.Errorf("unparseable REQUEST_TIMEOUT should keep the default, got %d", cfg.Request.TimeoutSeconds)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg.Data.Source = "csv"
	if err := cfg.Validate(); err == nil {
		t.Error("expected rejection of unknown data source")
	}

	cfg.Data.Source = "synthetic"
	cfg.Data.LookbackDays = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected rejection of negative lookback")
	}
}
