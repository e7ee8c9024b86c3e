package reembed

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/poiesic/clinassist/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessor_Process(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 3)

	notes, err := repo.AllNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 3)

	embedder := mock.NewMockEmbedder()
	bp := NewBatchProcessor(repo, embedder, 3, time.Millisecond)

	err = bp.Process(context.Background(), notes)
	require.NoError(t, err)

	// Stored vectors should be replaced with normalized embeddings
	updated, err := repo.AllNotes(context.Background())
	require.NoError(t, err)
	for _, note := range updated {
		require.NotEmpty(t, note.Vector, "note %s should have a vector", note.NoteID)
		assert.NotEqual(t, []float32{1, 0, 0}, note.Vector, "note %s should have a fresh vector", note.NoteID)

		var magnitude float64
		for _, v := range note.Vector {
			magnitude += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(magnitude), 1e-5, "vector for %s should be unit length", note.NoteID)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	repo := newTestRepo(t)
	embedder := mock.NewMockEmbedder()
	bp := NewBatchProcessor(repo, embedder, 3, time.Millisecond)

	err := bp.Process(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, embedder.CallCount(), "embedder should not be called for an empty batch")
}

func TestBatchProcessor_EmbedderFailure(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 2)

	notes, err := repo.AllNotes(context.Background())
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	bp := NewBatchProcessor(repo, embedder, 2, time.Millisecond)
	err = bp.Process(context.Background(), notes)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 2)

	notes, err := repo.AllNotes(context.Background())
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	bp := NewBatchProcessor(repo, embedder, 1, time.Millisecond)
	err = bp.Process(context.Background(), notes)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestBatchProcessor_RetriesTransientFailure(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 1)

	notes, err := repo.AllNotes(context.Background())
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	attempts := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 2 {
			return nil, errors.New("transient failure")
		}
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{0, 3, 4}
		}
		return vectors, nil
	}

	bp := NewBatchProcessor(repo, embedder, 3, time.Millisecond)
	err = bp.Process(context.Background(), notes)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts, "should succeed on second attempt")

	updated, err := repo.GetNote(context.Background(), notes[0].NoteID)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, updated.Vector[1], 1e-6)
	assert.InDelta(t, 0.8, updated.Vector[2], 1e-6)
}
