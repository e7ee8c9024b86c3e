package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "https://router.huggingface.co/v1", cfg.GenerationHost)
	assert.Equal(t, "BAAI/bge-small-en-v1.5", cfg.EmbeddingModel)
	assert.Equal(t, "meta-llama/Meta-Llama-3-8B-Instruct", cfg.GenerationModel)
	assert.Equal(t, 256, cfg.MaxTokens)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 0.9, cfg.TopP)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, 256, cfg.MaxTokens)
	})

	t.Run("with shared host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.GenerationHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithGenerationHost("http://generate:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://generate:9090/v1", cfg.GenerationHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("text-embedding-3-small"),
			WithGenerationModel("mistralai/Mistral-7B-Instruct-v0.3"),
		)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "mistralai/Mistral-7B-Instruct-v0.3", cfg.GenerationModel)
	})

	t.Run("with sampling options", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("hf_test"),
			WithMaxTokens(512),
			WithTemperature(0.2),
			WithTopP(0.95),
		)

		assert.Equal(t, "hf_test", cfg.APIKey)
		assert.Equal(t, 512, cfg.MaxTokens)
		assert.Equal(t, 0.2, cfg.Temperature)
		assert.Equal(t, 0.95, cfg.TopP)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.GenerationHost)
	})

	t.Run("strips trailing slash before suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves canonical hosts alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }, true},
		{"missing generation host", func(c *Config) { c.GenerationHost = "" }, true},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }, true},
		{"missing generation model", func(c *Config) { c.GenerationModel = "" }, true},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, true},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, true},
		{"zero temperature is allowed", func(c *Config) { c.Temperature = 0 }, false},
		{"top-p above one", func(c *Config) { c.TopP = 1.1 }, true},
		{"zero top-p", func(c *Config) { c.TopP = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("zero values fall back to defaults", func(t *testing.T) {
		opts := cfg.Options(GenerationOptions{})

		require.Equal(t, cfg.GenerationModel, opts.Model)
		assert.Equal(t, cfg.MaxTokens, opts.MaxTokens)
		assert.Equal(t, cfg.Temperature, opts.Temperature)
		assert.Equal(t, cfg.TopP, opts.TopP)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		opts := cfg.Options(GenerationOptions{
			Model:       "custom-model",
			MaxTokens:   64,
			Temperature: 0.1,
			TopP:        0.5,
		})

		assert.Equal(t, "custom-model", opts.Model)
		assert.Equal(t, 64, opts.MaxTokens)
		assert.Equal(t, 0.1, opts.Temperature)
		assert.Equal(t, 0.5, opts.TopP)
	})
}
