package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/clinassist/ai"
	"github.com/poiesic/clinassist/core"
)

const (
	// DefaultTopK is the number of results returned when no limit is given.
	DefaultTopK = 3

	// DefaultVectorWeight is the fusion weight applied to the vector signal
	// when no weight is given. The remainder goes to the keyword signal.
	DefaultVectorWeight = 0.7
)

// Engine ranks clinical notes against a query by fusing semantic and
// lexical signals.
type Engine struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new search engine backed by the given embedder.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search ranks notes against the query and returns at most k results,
// sorted descending by fused score.
// On any internal error it logs and returns an empty result set rather
// than failing; callers treat empty results as "no usable context".
func (e *Engine) Search(ctx context.Context, query string, notes []*core.Note, k int, vectorWeight float64) []core.ScoredNote {
	return e.SearchWithMonitor(ctx, query, notes, k, vectorWeight, nil)
}

// SearchWithMonitor ranks notes against the query with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, notes []*core.Note, k int, vectorWeight float64, monitor SearchMonitor) []core.ScoredNote {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if k <= 0 {
		k = DefaultTopK
	}
	if vectorWeight < 0 || vectorWeight > 1 {
		e.logger.Warn("fusion weight out of range, using default", "weight", vectorWeight)
		vectorWeight = DefaultVectorWeight
	}

	monitor.Start(query)

	if len(notes) == 0 {
		empty := []core.ScoredNote{}
		monitor.Finish(empty)
		return empty
	}

	queryVector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "query", query, "err", err)
		empty := []core.ScoredNote{}
		monitor.Finish(empty)
		return empty
	}
	monitor.AfterQueryEmbedding(queryVector)

	// Score every note. Scores stay positionally aligned with the input so
	// the stable sort below preserves input order among equal scores.
	scored := make([]core.ScoredNote, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}

		vectorScore := Cosine(queryVector, note.Vector)
		keywordScore := KeywordOverlap(query, note.Text)
		fused := vectorWeight*vectorScore + (1-vectorWeight)*keywordScore

		monitor.Scored(note, vectorScore, keywordScore, fused)
		scored = append(scored, core.ScoredNote{Note: note, Score: fused})
	}

	slices.SortStableFunc(scored, func(a, b core.ScoredNote) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	monitor.Finish(scored)
	e.logger.Debug("search complete", "query", query, "candidates", len(notes), "results", len(scored))

	return scored
}
