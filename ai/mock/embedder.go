package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// mockVectorDim matches the dimensionality of the default embedding model.
const mockVectorDim = 384

// MockEmbedder is a test double for ai.Embedder. Behavior can be injected
// through the Func fields; without injection it produces deterministic
// unit-length vectors derived from the input text, so identical texts embed
// identically across test runs.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount int
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockEmbedder().
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return textVector(text), nil
}

func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = textVector(text)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// textVector derives a unit-length pseudo-embedding from text. An FNV hash
// of the text seeds a linear congruential generator that fills the vector.
func textVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	v := make([]float32, mockVectorDim)
	var sum float64
	for i := range v {
		state = state*6364136223846793005 + 1442695040888963407
		// Map the high bits into [-1, 1)
		v[i] = float32(int64(state>>32))/float32(1<<31) - 1
		sum += float64(v[i]) * float64(v[i])
	}

	if norm := math.Sqrt(sum); norm > 0 {
		for i := range v {
			v[i] = float32(float64(v[i]) / norm)
		}
	}
	return v
}
