package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Search.Threshold != 0.55 {
		t.Errorf("expected Threshold=0.55, got %f", cfg.Search.Threshold)
	}
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("expected Dimension=384, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Session.MaxSize != 1000 {
		t.Errorf("expected MaxSize=1000, got %d", cfg.Session.MaxSize)
	}
	if cfg.Session.MaxMessagesPerSession != 6 {
		t.Errorf("expected MaxMessagesPerSession=6, got %d", cfg.Session.MaxMessagesPerSession)
	}
	if cfg.Session.MaxAgeMinutes != 60 {
		t.Errorf("expected MaxAgeMinutes=60, got %d", cfg.Session.MaxAgeMinutes)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "garage.yaml")

	content := `
search:
  top_k: 10
  threshold: 0.3
session:
  max_size: 50
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Search.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Search.TopK)
	}
	if cfg.Search.Threshold != 0.3 {
		t.Errorf("expected Threshold=0.3, got %f", cfg.Search.Threshold)
	}
	if cfg.Session.MaxSize != 50 {
		t.Errorf("expected MaxSize=50, got %d", cfg.Session.MaxSize)
	}
	// Untouched sections keep defaults.
	if cfg.Embedding.Provider != "local" {
		t.Errorf("expected Provider=local, got %s", cfg.Embedding.Provider)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "garage.yaml")

	content := `
store:
  index_name: test-index
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.IndexName != "test-index" {
		t.Errorf("expected IndexName=test-index, got %s", cfg.Store.IndexName)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "garage.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":9999"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Server.Addr != ":9999" {
		t.Errorf("expected Addr=:9999, got %s", loaded.Server.Addr)
	}
}
