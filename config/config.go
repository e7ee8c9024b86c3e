package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// StoreConfig locates the embedded-note store.
type StoreConfig struct {
	// Path is the badger database directory.
	Path string
	// InMemory keeps the store in memory, for tests and experiments.
	InMemory bool
}

// EmbeddingConfig selects the embedding service and model.
type EmbeddingConfig struct {
	Host  string
	Model string
}

// LLMConfig selects the generation service, model, and sampling parameters.
type LLMConfig struct {
	Host        string
	APIKey      string
	Model       string
	MaxLength   int
	Temperature float64
	TopP        float64
}

// FHIRConfig locates the FHIR server used for ingestion.
type FHIRConfig struct {
	BaseURL string
}

// ServerConfig configures the web API.
type ServerConfig struct {
	Port int
}

// Config is the full process configuration.
type Config struct {
	Store     StoreConfig
	Embedding EmbeddingConfig
	LLM       LLMConfig
	FHIR      FHIRConfig
	Server    ServerConfig
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win
// over .env entries. Unset variables fall back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment and defaults")
	}

	cfg := &Config{
		Store: StoreConfig{
			Path:     getEnv("NOTE_STORE_PATH", "clinassist.db"),
			InMemory: getEnvBool("NOTE_STORE_IN_MEMORY", false),
		},
		Embedding: EmbeddingConfig{
			Host:  getEnv("EMBEDDING_HOST", "http://localhost:11434/v1"),
			Model: getEnv("EMBEDDING_MODEL", "BAAI/bge-small-en-v1.5"),
		},
		LLM: LLMConfig{
			Host:        getEnv("LLM_HOST", "https://router.huggingface.co/v1"),
			APIKey:      getEnv("HF_API_KEY", ""),
			Model:       getEnv("LLM_MODEL", "meta-llama/Meta-Llama-3-8B-Instruct"),
			MaxLength:   getEnvInt("LLM_MAX_LENGTH", 256),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
			TopP:        getEnvFloat("LLM_TOP_P", 0.9),
		},
		FHIR: FHIRConfig{
			BaseURL: getEnv("FHIR_BASE_URL", "http://localhost:52773/fhir/r4"),
		},
		Server: ServerConfig{
			Port: getEnvInt("PORT", 5000),
		},
	}

	slog.Debug("configuration loaded")

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.Warn("invalid float in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}
