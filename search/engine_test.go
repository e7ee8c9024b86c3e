package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/clinassist/ai/mock"
	"github.com/poiesic/clinassist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(embedder)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("with custom logger", func(t *testing.T) {
		engine, err := NewEngine(embedder, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		engine, err := NewEngine(embedder, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	fixedEmbedder := mock.NewMockEmbedder()
	fixedEmbedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	t.Run("weight one is pure vector ranking", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "far", PatientID: "1", Text: "warfarin warfarin warfarin", Vector: []float32{0, 1}},
			{NoteID: "near", PatientID: "2", Text: "nothing relevant", Vector: []float32{1, 0}},
		}

		results := engine.Search(ctx, "warfarin", notes, 2, 1.0)
		require.Len(t, results, 2)
		assert.Equal(t, "near", results[0].Note.NoteID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
		assert.InDelta(t, 0.0, results[1].Score, 1e-9)
	})

	t.Run("weight zero is pure keyword ranking", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "near", PatientID: "1", Text: "nothing relevant", Vector: []float32{1, 0}},
			{NoteID: "match", PatientID: "2", Text: "takes warfarin daily", Vector: []float32{0, 1}},
		}

		results := engine.Search(ctx, "warfarin", notes, 2, 0.0)
		require.Len(t, results, 2)
		assert.Equal(t, "match", results[0].Note.NoteID)
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	})

	t.Run("fused scoring blends both signals", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "both", PatientID: "1", Text: "takes warfarin", Vector: []float32{1, 0}},
		}

		results := engine.Search(ctx, "warfarin", notes, 1, 0.7)
		require.Len(t, results, 1)
		// 0.7*1.0 + 0.3*1.0
		assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	})

	t.Run("never returns more than k", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "n1", Text: "a", Vector: []float32{1, 0}},
			{NoteID: "n2", Text: "b", Vector: []float32{1, 0}},
			{NoteID: "n3", Text: "c", Vector: []float32{1, 0}},
			{NoteID: "n4", Text: "d", Vector: []float32{1, 0}},
		}

		results := engine.Search(ctx, "query", notes, 2, 0.7)
		assert.Len(t, results, 2)
	})

	t.Run("fewer notes than k", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{{NoteID: "only", Text: "a", Vector: []float32{1, 0}}}

		results := engine.Search(ctx, "query", notes, 5, 0.7)
		assert.Len(t, results, 1)
	})

	t.Run("equal scores keep input order", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		// a and b tie exactly; c scores lower
		notes := []*core.Note{
			{NoteID: "a", Text: "irrelevant", Vector: []float32{0.9, 0.435889894}},
			{NoteID: "b", Text: "irrelevant", Vector: []float32{0.9, -0.435889894}},
			{NoteID: "c", Text: "irrelevant", Vector: []float32{0.5, 0.866025404}},
		}

		results := engine.Search(ctx, "query", notes, 2, 1.0)
		require.Len(t, results, 2)
		assert.Equal(t, "a", results[0].Note.NoteID)
		assert.Equal(t, "b", results[1].Note.NoteID)
	})

	t.Run("results sorted non-increasing", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "low", Text: "x", Vector: []float32{0, 1}},
			{NoteID: "mid", Text: "x", Vector: []float32{0.7, 0.7}},
			{NoteID: "high", Text: "x", Vector: []float32{1, 0}},
		}

		results := engine.Search(ctx, "query", notes, 3, 1.0)
		require.Len(t, results, 3)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
		assert.Equal(t, "high", results[0].Note.NoteID)
	})

	t.Run("embedding failure returns empty results", func(t *testing.T) {
		failing := mock.NewMockEmbedder()
		failing.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("model unavailable")
		}

		engine, err := NewEngine(failing)
		require.NoError(t, err)

		notes := []*core.Note{{NoteID: "n1", Text: "a", Vector: []float32{1, 0}}}

		results := engine.Search(ctx, "query", notes, 3, 0.7)
		assert.Empty(t, results)
	})

	t.Run("no notes", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		results := engine.Search(ctx, "query", nil, 3, 0.7)
		assert.Empty(t, results)
	})

	t.Run("nil notes are skipped", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{nil, {NoteID: "n1", Text: "a", Vector: []float32{1, 0}}}

		results := engine.Search(ctx, "query", notes, 3, 0.7)
		require.Len(t, results, 1)
		assert.Equal(t, "n1", results[0].Note.NoteID)
	})

	t.Run("defaults applied for invalid parameters", func(t *testing.T) {
		engine, err := NewEngine(fixedEmbedder)
		require.NoError(t, err)

		notes := []*core.Note{
			{NoteID: "n1", Text: "a", Vector: []float32{1, 0}},
			{NoteID: "n2", Text: "b", Vector: []float32{1, 0}},
			{NoteID: "n3", Text: "c", Vector: []float32{1, 0}},
			{NoteID: "n4", Text: "d", Vector: []float32{1, 0}},
		}

		results := engine.Search(ctx, "query", notes, 0, 1.5)
		assert.Len(t, results, DefaultTopK)
	})
}

type recordingMonitor struct {
	started     string
	vector      []float32
	scoredN     int
	finished    int
	finishCalls int
}

func (m *recordingMonitor) Start(query string)               { m.started = query }
func (m *recordingMonitor) AfterQueryEmbedding(v []float32)  { m.vector = v }
func (m *recordingMonitor) Scored(_ *core.Note, _, _, _ float64) { m.scoredN++ }
func (m *recordingMonitor) Finish(results []core.ScoredNote) {
	m.finished = len(results)
	m.finishCalls++
}

func TestSearchWithMonitor(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	notes := []*core.Note{
		{NoteID: "n1", Text: "a", Vector: []float32{1, 0}},
		{NoteID: "n2", Text: "b", Vector: []float32{0, 1}},
	}

	monitor := &recordingMonitor{}
	results := engine.SearchWithMonitor(context.Background(), "query", notes, 1, 0.7, monitor)

	require.Len(t, results, 1)
	assert.Equal(t, "query", monitor.started)
	assert.Equal(t, []float32{1, 0}, monitor.vector)
	assert.Equal(t, 2, monitor.scoredN)
	assert.Equal(t, 1, monitor.finished)
	assert.Equal(t, 1, monitor.finishCalls)
}

func TestSearchWithMonitorFinishesOnEarlyReturn(t *testing.T) {
	t.Run("no candidate notes", func(t *testing.T) {
		engine, err := NewEngine(mock.NewMockEmbedder())
		require.NoError(t, err)

		monitor := &recordingMonitor{}
		results := engine.SearchWithMonitor(context.Background(), "query", nil, 3, 0.7, monitor)

		assert.Empty(t, results)
		assert.Equal(t, "query", monitor.started)
		assert.Equal(t, 1, monitor.finishCalls, "Finish should pair with Start")
		assert.Equal(t, 0, monitor.finished)
	})

	t.Run("embedding failure", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("embedding service unavailable")
		}

		engine, err := NewEngine(embedder)
		require.NoError(t, err)

		notes := []*core.Note{{NoteID: "n1", Text: "a", Vector: []float32{1, 0}}}

		monitor := &recordingMonitor{}
		results := engine.SearchWithMonitor(context.Background(), "query", notes, 3, 0.7, monitor)

		assert.Empty(t, results)
		assert.Equal(t, 1, monitor.finishCalls, "Finish should pair with Start")
		assert.Equal(t, 0, monitor.scoredN)
	})
}
