package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// GenerationOptions carries per-request generation parameters.
// Zero-valued fields fall back to the provider's configured defaults.
type GenerationOptions struct {
	// Model is the generation model identifier.
	Model string

	// MaxTokens limits the length of the generated completion.
	MaxTokens int

	// Temperature controls sampling randomness. Must be >= 0.
	Temperature float64

	// TopP is the nucleus sampling parameter, in (0, 1].
	TopP float64
}

// Generator produces a free-text completion for a prompt.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText generates a completion for the prompt.
	// Callers decide whether a failure aborts or degrades; the answer
	// pipeline downgrades errors to a descriptive error string so a
	// generation outage still yields a user-facing response.
	GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
