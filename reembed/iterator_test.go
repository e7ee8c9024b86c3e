package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/clinassist/core"
	"github.com/poiesic/clinassist/storage"
	"github.com/poiesic/clinassist/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.NoteRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedNotes(t *testing.T, repo storage.NoteRepository, count int) {
	t.Helper()
	notes := make([]*core.Note, count)
	for i := range notes {
		notes[i] = &core.Note{
			NoteID:    fmt.Sprintf("patient-summary-%d", i+1),
			PatientID: fmt.Sprintf("%d", i+1),
			Text:      fmt.Sprintf("Patient %d has the following conditions:\n- Hypertension (active, confirmed) since 2017-02-01", i+1),
			Vector:    []float32{1, 0, 0},
		}
	}
	_, _, err := repo.PutNotes(context.Background(), notes...)
	require.NoError(t, err)
}

func TestNoteIterator_Batches(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 7)

	it := NewNoteIterator(repo, 3)

	var batchSizes []int
	seen := make(map[string]bool)
	err := it.ForEach(context.Background(), func(notes []*core.Note) error {
		batchSizes = append(batchSizes, len(notes))
		for _, n := range notes {
			seen[n.NoteID] = true
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
	assert.Len(t, seen, 7, "every note should be visited exactly once")
}

func TestNoteIterator_EmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	it := NewNoteIterator(repo, 10)

	called := false
	err := it.ForEach(context.Background(), func([]*core.Note) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called, "fn should not be called for an empty store")
}

func TestNoteIterator_StopsOnError(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 5)

	it := NewNoteIterator(repo, 2)

	wantErr := errors.New("batch failed")
	calls := 0
	err := it.ForEach(context.Background(), func([]*core.Note) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls, "iteration should stop on first error")
}

func TestNoteIterator_ContextCancellation(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo, 4)

	it := NewNoteIterator(repo, 2)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := it.ForEach(ctx, func([]*core.Note) error {
		calls++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation should stop iteration after the current batch")
}

func TestNoteIterator_InvalidBatchSize(t *testing.T) {
	repo := newTestRepo(t)

	it := NewNoteIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize, "non-positive batch size should fall back to default")
}
