package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.5, 0.5}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float32{0.3, -0.7, 0.2, 0.9}
		b := []float32{0.1, 0.4, -0.5, 0.6}
		assert.Equal(t, Cosine(a, b), Cosine(b, a))
	})

	t.Run("zero magnitude yields zero", func(t *testing.T) {
		zero := []float32{0, 0, 0}
		assert.Equal(t, 0.0, Cosine(zero, []float32{1, 2, 3}))
		assert.Equal(t, 0.0, Cosine([]float32{1, 2, 3}, zero))
		assert.Equal(t, 0.0, Cosine(zero, zero))
	})

	t.Run("length mismatch yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("empty vectors", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float32{}, []float32{}))
	})
}
