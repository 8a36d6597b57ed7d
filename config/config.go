// Package config loads memmesh settings from an optional YAML file and the
// environment. A .env file in the working directory is honored (via
// godotenv), then MEMMESH_* variables override file values. The result is a
// plain value struct handed to constructors; there is no global config state.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config collects the tunables of the memory pipeline and the provider
// model names. API keys are not held here; the provider SDKs read them from
// the environment directly.
type Config struct {
	EmbeddingModel  string  `yaml:"embeddingModel"`
	CompletionModel string  `yaml:"completionModel"`
	ChunkSize       int     `yaml:"chunkSize"`
	ChunkOverlap    int     `yaml:"chunkOverlap"`
	DedupThreshold  float64 `yaml:"dedupThreshold"`
	MinScore        float64 `yaml:"minScore"`
	MaxResults      int     `yaml:"maxResults"`
	LogLevel        string  `yaml:"logLevel"`
	LogFormat       string  `yaml:"logFormat"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		EmbeddingModel:  "text-embedding-3-small",
		CompletionModel: "gpt-4o-mini",
		ChunkSize:       1000,
		ChunkOverlap:    200,
		DedupThreshold:  0.95,
		MinScore:        0.3,
		MaxResults:      5,
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load builds a Config from defaults, an optional YAML file (path may be
// empty) and environment overrides, in that precedence order. A missing .env
// file is not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.EmbeddingModel, "MEMMESH_EMBEDDING_MODEL")
	setString(&cfg.CompletionModel, "MEMMESH_COMPLETION_MODEL")
	setInt(&cfg.ChunkSize, "MEMMESH_CHUNK_SIZE")
	setInt(&cfg.ChunkOverlap, "MEMMESH_CHUNK_OVERLAP")
	setFloat(&cfg.DedupThreshold, "MEMMESH_DEDUP_THRESHOLD")
	setFloat(&cfg.MinScore, "MEMMESH_MIN_SCORE")
	setInt(&cfg.MaxResults, "MEMMESH_MAX_RESULTS")
	setString(&cfg.LogLevel, "MEMMESH_LOG_LEVEL")
	setString(&cfg.LogFormat, "MEMMESH_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
