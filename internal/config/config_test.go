package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Sources.Feeds) != 7 {
		t.Errorf("expected 7 feeds, got %d", len(cfg.Sources.Feeds))
	}

	if cfg.Summarizer.Provider != "huggingface" {
		t.Errorf("expected provider 'huggingface', got %q", cfg.Summarizer.Provider)
	}

	if cfg.Summarizer.HFModel != "facebook/bart-large-cnn" {
		t.Errorf("expected model 'facebook/bart-large-cnn', got %q", cfg.Summarizer.HFModel)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}

	if cfg.Ingest.PaceMs != 500 {
		t.Errorf("expected pace_ms 500, got %d", cfg.Ingest.PaceMs)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
summarizer:
  provider: openai
  openai_model: gpt-4o
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Summarizer.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", cfg.Summarizer.Provider)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Summarizer.HFAPIKeyEnv != "HUGGINGFACE_TOKEN" {
		t.Errorf("expected default hf_api_key_env, got %q", cfg.Summarizer.HFAPIKeyEnv)
	}
	if cfg.Ingest.PerFeedLimit != 10 {
		t.Errorf("expected default per_feed_limit, got %d", cfg.Ingest.PerFeedLimit)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Sources.Feeds) == 0 {
		t.Error("expected feeds to be populated from file")
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	if cfg.GetDataDir() == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Output.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
}
