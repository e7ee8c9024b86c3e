package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/clinassist/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	config *ai.Config
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.APIKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.GenerationHost),
		openai.WithToken(token),
		openai.WithModel(config.GenerationModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		config: config,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateText generates a completion for the prompt. Zero-valued option
// fields fall back to the configured defaults.
func (g *Generator) GenerateText(ctx context.Context, prompt string, opts ai.GenerationOptions) (string, error) {
	opts = g.config.Options(opts)
	g.logger.Debug("generating text", "model", opts.Model, "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithModel(opts.Model),
		llms.WithMaxTokens(opts.MaxTokens),
		llms.WithTemperature(opts.Temperature),
		llms.WithTopP(opts.TopP),
	)
	if err != nil {
		g.logger.Error("failed to generate text", "model", opts.Model, "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model", "model", opts.Model)
		return "", nil
	}

	return response.Choices[0].Content, nil
}
