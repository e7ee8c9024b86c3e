package mock

import (
	"context"

	"github.com/poiesic/clinassist/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, returns a short canned answer.
	GenerateTextFunc func(ctx context.Context, prompt string, opts ai.GenerationOptions) (string, error)

	callCount int
	// LastPrompt records the prompt from the most recent call.
	LastPrompt string
	// LastOptions records the options from the most recent call.
	LastOptions ai.GenerationOptions
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow behavior injection and assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns an injected or canned completion.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, opts ai.GenerationOptions) (string, error) {
	m.callCount++
	m.LastPrompt = prompt
	m.LastOptions = opts

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt, opts)
	}

	return "The patient is stable.", nil
}

// CallCount returns the number of times GenerateText was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.LastPrompt = ""
	m.LastOptions = ai.GenerationOptions{}
	m.GenerateTextFunc = nil
}
