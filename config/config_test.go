package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.Backend != "bolt" {
		t.Errorf("expected backend=bolt, got %s", cfg.Storage.Backend)
	}
	if cfg.Embedding.Model != "all-minilm" {
		t.Errorf("expected model=all-minilm, got %s", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimension != 384 {
		t.Errorf("expected dimension=384, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected top_k=5, got %d", cfg.Search.TopK)
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
	configPath := filepath.Join(tmpDir, "semnotes.yaml")

	content := `
storage:
  backend: sqlite
embedding:
  provider: mock
  dimension: 8
search:
  top_k: 3
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("expected backend=sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Embedding.Provider != "mock" {
		t.Errorf("expected provider=mock, got %s", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimension != 8 {
		t.Errorf("expected dimension=8, got %d", cfg.Embedding.Dimension)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("expected top_k=3, got %d", cfg.Search.TopK)
	}
}

func TestLoadFromDir_FindsConfig(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "semnotes.yaml"), []byte("search:\n  top_k: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.TopK != 7 {
		t.Errorf("expected top_k=7, got %d", cfg.Search.TopK)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "semnotes.yaml")

	cfg := DefaultConfig()
	cfg.Search.TopK = 9
	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Search.TopK != 9 {
		t.Errorf("expected top_k=9 after round trip, got %d", loaded.Search.TopK)
	}
}
