package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/clinassist/ai"
	"github.com/poiesic/clinassist/core"
	"github.com/poiesic/clinassist/storage"
)

// Pipeline embeds note summaries and stores them for retrieval.
// Batches are processed concurrently on a worker pool.
type Pipeline struct {
	notes          storage.NoteRepository
	embedder       ai.Embedder
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many summaries are embedded per batch.
// Default is 16.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the retry policy for embedding calls.
// Default is 3 attempts with a 500ms base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxRetries = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

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

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(notes storage.NoteRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		notes:          notes,
		embedder:       embedder,
		pool:           pool,
		batchSize:      16,
		maxRetries:     3,
		retryBaseDelay: 500 * time.Millisecond,
		logger:         slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Result reports the outcome of an ingestion run.
type Result struct {
	Inserted int // notes newly stored
	Updated  int // notes replaced in place
	Failed   int // summaries whose batch failed after retries
}

// IngestSummaries embeds the summaries in batches and stores the resulting
// notes. Batches run concurrently; a batch that fails after its retries is
// logged and counted in Result.Failed without aborting the others.
func (p *Pipeline) IngestSummaries(ctx context.Context, summaries []core.NoteSummary) (*Result, error) {
	if len(summaries) == 0 {
		return &Result{}, nil
	}

	for i := range summaries {
		if err := core.ValidateNoteSummary(&summaries[i]); err != nil {
			return nil, err
		}
	}

	p.logger.Info("ingesting summaries", "count", len(summaries), "batchSize", p.batchSize)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result Result
	)

	for start := 0; start < len(summaries); start += p.batchSize {
		end := start + p.batchSize
		if end > len(summaries) {
			end = len(summaries)
		}
		batch := summaries[start:end]

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()

			inserted, updated, err := p.processBatch(ctx, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.logger.Error("error processing batch", "size", len(batch), "err", err)
				result.Failed += len(batch)
				return
			}
			result.Inserted += inserted
			result.Updated += updated
		}); err != nil {
			wg.Done()
			mu.Lock()
			result.Failed += len(batch)
			mu.Unlock()
			p.logger.Error("error submitting batch", "err", err)
		}
	}

	wg.Wait()

	p.logger.Info("ingestion complete", "inserted", result.Inserted, "updated", result.Updated, "failed", result.Failed)

	return &result, nil
}

// processBatch embeds one batch of summaries and stores the notes.
func (p *Pipeline) processBatch(ctx context.Context, batch []core.NoteSummary) (int, int, error) {
	texts := make([]string, len(batch))
	for i, summary := range batch {
		texts[i] = summary.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		embeddings, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.maxRetries, p.retryBaseDelay)
	if err != nil {
		return 0, 0, err
	}

	if len(embeddings) != len(batch) {
		return 0, 0, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
	}

	notes := make([]*core.Note, len(batch))
	for i, summary := range batch {
		notes[i] = &core.Note{
			NoteID:    summary.NoteID,
			PatientID: summary.PatientID,
			Text:      summary.Text,
			Vector:    embeddings[i],
		}
	}

	return p.notes.PutNotes(ctx, notes...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
