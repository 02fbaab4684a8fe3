package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the semnotes tool.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
}

// StorageConfig selects the note backend. Vectors always live in a bbolt
// file next to the notes.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "bolt", "sqlite", "memory"
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "ollama", "openai", "mock"
	Model     string `yaml:"model"`       // e.g., "all-minilm"
	BaseURL   string `yaml:"base_url"`    // override for local servers
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	Dimension int    `yaml:"dimension"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// DefaultConfig returns the default configuration: a local all-minilm model
// (384 dimensions) over bbolt storage, five results per search.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "bolt",
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 384,
		},
		Search: SearchConfig{
			TopK: 5,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for semnotes.yaml,
// then .semnotes/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "semnotes.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".semnotes", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NotesDBPath returns the path to the note database.
func NotesDBPath(dir string) string {
	return filepath.Join(dir, ".semnotes", "notes.db")
}

// VectorsDBPath returns the path to the vector database, used when the note
// backend is not bbolt and the two stores cannot share a file.
func VectorsDBPath(dir string) string {
	return filepath.Join(dir, ".semnotes", "vectors.db")
}

// EnsureDataDir ensures the .semnotes directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".semnotes"), 0755)
}
