package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the garage service.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Session   SessionConfig   `yaml:"session"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	IndexName    string `yaml:"index_name"`
	SnapshotPath string `yaml:"snapshot_path"` // empty disables persistence
}

// EmbeddingConfig holds embedding provider configuration. The provider is
// selected once at startup.
type EmbeddingConfig struct {
	Provider       string `yaml:"provider"` // "local", "openai", "gemini"
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"` // Environment variable for API key
	Dimension      int    `yaml:"dimension"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SearchConfig holds retrieval configuration.
type SearchConfig struct {
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"` // Filter results below this similarity
}

// SessionConfig holds session cache configuration.
type SessionConfig struct {
	MaxSize               int `yaml:"max_size"`
	MaxAgeMinutes         int `yaml:"max_age_minutes"`
	MaxMessagesPerSession int `yaml:"max_messages_per_session"`
	MaxRequestsPerMinute  int `yaml:"max_requests_per_minute"`
	SweepIntervalMinutes  int `yaml:"sweep_interval_minutes"`
}

// CorpusConfig holds document source configuration.
type CorpusConfig struct {
	Source   string   `yaml:"source"` // "files" or "bolt"
	Dir      string   `yaml:"dir"`
	Includes []string `yaml:"includes"`
	DBPath   string   `yaml:"db_path"`
}

// GeneratorConfig holds reply generation configuration.
type GeneratorConfig struct {
	Provider  string `yaml:"provider"` // "none" or "gemini"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			IndexName:    "service-kb",
			SnapshotPath: filepath.Join("data", "vector-store.json"),
		},
		Embedding: EmbeddingConfig{
			Provider:       "local",
			Model:          "",
			APIKeyEnv:      "GEMINI_API_KEY",
			Dimension:      384,
			TimeoutSeconds: 30,
		},
		Search: SearchConfig{
			TopK:      5,
			Threshold: 0.55,
		},
		Session: SessionConfig{
			MaxSize:               1000,
			MaxAgeMinutes:         60,
			MaxMessagesPerSession: 6,
			MaxRequestsPerMinute:  60,
			SweepIntervalMinutes:  5,
		},
		Corpus: CorpusConfig{
			Source:   "files",
			Dir:      filepath.Join("data", "docs"),
			Includes: []string{"**/*.json"},
			DBPath:   filepath.Join("data", "corpus.db"),
		},
		Generator: GeneratorConfig{
			Provider:  "none",
			Model:     "gemini-1.5-flash",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Server: ServerConfig{
			Addr: ":4000",
		},
		Logging: LoggingConfig{
			Level: "info",
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

// LoadFromDir loads configuration from a directory (looks for garage.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "garage.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".garage", "config.yaml")
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
