package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/clinassist/ai"
	"github.com/poiesic/clinassist/core"
	"github.com/poiesic/clinassist/search"
	"github.com/poiesic/clinassist/storage"
)

// AskOptions control a single pipeline invocation.
type AskOptions struct {
	// TopK is the maximum number of context notes to retrieve.
	TopK int

	// VectorWeight is the fusion weight for the vector signal, in [0,1].
	VectorWeight float64

	// IncludeSources appends a "Sources: Patient X, Patient Y" suffix
	// listing the context notes' patient IDs in ranked order.
	IncludeSources bool

	// Generation overrides the configured generation parameters.
	// Zero-valued fields fall back to configuration defaults.
	Generation ai.GenerationOptions
}

// DefaultAskOptions returns the options Ask uses.
func DefaultAskOptions() AskOptions {
	return AskOptions{
		TopK:           search.DefaultTopK,
		VectorWeight:   search.DefaultVectorWeight,
		IncludeSources: true,
	}
}

// Pipeline answers clinical questions against the stored notes.
type Pipeline struct {
	notes     storage.NoteRepository
	engine    *search.Engine
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new answer pipeline.
func NewPipeline(
	notes storage.NoteRepository,
	engine *search.Engine,
	generator ai.Generator,
	opts ...Option,
) (*Pipeline, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if engine == nil {
		return nil, ErrSearchEngineRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	p := &Pipeline{
		notes:     notes,
		engine:    engine,
		generator: generator,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Ask answers the query with default options.
func (p *Pipeline) Ask(ctx context.Context, query string) (*core.Answer, error) {
	return p.AskWithOptions(ctx, query, DefaultAskOptions())
}

// AskWithOptions runs the full retrieval and generation flow for one query.
// A store or embedding failure degrades to an empty context set, and a
// generation failure degrades to a descriptive error string that passes
// through sanitization. Only an empty query is rejected.
func (p *Pipeline) AskWithOptions(ctx context.Context, query string, opts AskOptions) (*core.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	p.logger.Info("processing query", "query", query)

	notes, err := p.notes.AllNotes(ctx)
	if err != nil {
		// Degrade to an empty context set rather than failing the query.
		p.logger.Error("error fetching notes", "err", err)
		notes = nil
	}

	topNotes := p.engine.Search(ctx, query, notes, opts.TopK, opts.VectorWeight)

	prompt := BuildPrompt(query, topNotes)

	raw, err := p.generator.GenerateText(ctx, prompt, opts.Generation)
	if err != nil {
		// The error text flows through sanitization like model output.
		p.logger.Error("error generating text", "err", err)
		raw = fmt.Sprintf("Error generating response: %s", err)
	}

	response := Sanitize(raw)

	if opts.IncludeSources && len(topNotes) > 0 {
		sources := make([]string, 0, len(topNotes))
		for _, sn := range topNotes {
			sources = append(sources, "Patient "+sn.Note.Patient())
		}
		response += "\n\nSources: " + strings.Join(sources, ", ")
	}

	return &core.Answer{
		Response: response,
		Sources:  topNotes,
	}, nil
}
